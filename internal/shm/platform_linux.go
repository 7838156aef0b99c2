//go:build linux

package shm

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

const devShm = "/dev/shm"

// ObjectName returns the path backing the named region.
func ObjectName(name string) string {
	return filepath.Join(devShm, name)
}

// MapRegion maps or creates a shared memory region (Linux implementation).
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if opts.Size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flags := unix.O_RDONLY
	prot := unix.PROT_READ
	if opts.Writable || opts.Create {
		flags = unix.O_RDWR
	}
	if opts.Writable {
		prot |= unix.PROT_WRITE
	}
	if opts.Create {
		flags |= unix.O_CREAT
	}
	shmPath := ObjectName(opts.Name)
	fd, err := unix.Open(shmPath, flags|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", shmPath, err)
	}
	// the mapping outlives the descriptor
	defer func() { _ = unix.Close(fd) }()

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("fstat %s: %w", shmPath, err)
	}
	if st.Size < int64(opts.Size) {
		if !opts.Create {
			return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrRegionTooSmall, shmPath, st.Size, opts.Size)
		}
		if !canCreateOnDevShm(uint64(opts.Size) - uint64(st.Size)) {
			return nil, fmt.Errorf("%w: path:%s size:%d", ErrNoSpace, shmPath, opts.Size)
		}
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Addr: addr,
		Name: opts.Name,
		Size: opts.Size,
	}, nil
}

// UnmapRegion unmaps the shared memory region (Linux implementation).
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	if err := unix.Munmap(region.Addr); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	region.Addr = nil
	return nil
}

// RemoveRegion unlinks the named region. Existing mappings stay valid.
func RemoveRegion(name string) error {
	if err := unix.Unlink(ObjectName(name)); err != nil && err != unix.ENOENT {
		return fmt.Errorf("unlink: %w", err)
	}
	return nil
}

func canCreateOnDevShm(size uint64) bool {
	stat, err := disk.Usage(devShm)
	if err != nil {
		// no tmpfs statistics, let ftruncate decide
		return true
	}
	return stat.Free >= size
}
