//go:build linux

package shm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PlatformTestSuite struct {
	suite.Suite
	name string
}

func (s *PlatformTestSuite) SetupTest() {
	if _, err := os.Stat(devShm); err != nil {
		s.T().Skipf("%s not available: %v", devShm, err)
	}
	s.name = fmt.Sprintf("acc_shm_unit_test_%d_%d", os.Getpid(), time.Now().UnixNano())
}

func (s *PlatformTestSuite) TearDownTest() {
	_ = RemoveRegion(s.name)
}

func (s *PlatformTestSuite) TestCreateThenAttach() {
	ctx := context.Background()
	w, err := MapRegion(ctx, MapOptions{Name: s.name, Size: 4096, Create: true, Writable: true})
	s.Require().NoError(err)
	s.Require().Len(w.Addr, 4096)
	StoreInt32(w.Addr, 0, 42)
	copy(w.Addr[8:], "hello")

	r, err := MapRegion(ctx, MapOptions{Name: s.name, Size: 4096})
	s.Require().NoError(err)
	s.Equal(int32(42), LoadInt32(r.Addr, 0))
	s.Equal("hello", string(r.Addr[8:13]))

	StoreInt32(w.Addr, 0, 43)
	s.Equal(int32(43), LoadInt32(r.Addr, 0))

	s.NoError(UnmapRegion(ctx, r))
	s.Nil(r.Addr)
	s.NoError(UnmapRegion(ctx, r), "unmap twice")
	s.NoError(UnmapRegion(ctx, w))
}

func (s *PlatformTestSuite) TestCreateKeepsExistingContent() {
	ctx := context.Background()
	w, err := MapRegion(ctx, MapOptions{Name: s.name, Size: 64, Create: true, Writable: true})
	s.Require().NoError(err)
	StoreInt32(w.Addr, 4, 7)

	// a reader that creates must not truncate the publisher's page
	r, err := MapRegion(ctx, MapOptions{Name: s.name, Size: 64, Create: true})
	s.Require().NoError(err)
	s.Equal(int32(7), LoadInt32(r.Addr, 4))

	s.NoError(UnmapRegion(ctx, r))
	s.NoError(UnmapRegion(ctx, w))
}

func (s *PlatformTestSuite) TestAttachMissing() {
	_, err := MapRegion(context.Background(), MapOptions{Name: s.name, Size: 64})
	s.Require().Error(err)
	s.True(errors.Is(err, os.ErrNotExist))
}

func (s *PlatformTestSuite) TestAttachTooSmall() {
	ctx := context.Background()
	w, err := MapRegion(ctx, MapOptions{Name: s.name, Size: 64, Create: true, Writable: true})
	s.Require().NoError(err)
	defer func() { _ = UnmapRegion(ctx, w) }()

	_, err = MapRegion(ctx, MapOptions{Name: s.name, Size: 128})
	s.True(errors.Is(err, ErrRegionTooSmall))
}

func (s *PlatformTestSuite) TestInvalidOptions() {
	_, err := MapRegion(context.Background(), MapOptions{Name: s.name, Size: 0})
	s.True(errors.Is(err, ErrInvalidSize))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MapRegion(ctx, MapOptions{Name: s.name, Size: 64, Create: true})
	s.True(errors.Is(err, context.Canceled))
}

func (s *PlatformTestSuite) TestCanCreateOnDevShm() {
	s.True(canCreateOnDevShm(1))
	s.False(canCreateOnDevShm(^uint64(0)))
}

func TestPlatformTestSuite(t *testing.T) {
	suite.Run(t, new(PlatformTestSuite))
}
