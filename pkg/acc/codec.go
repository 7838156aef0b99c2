/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package acc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/lunixbochs/struc"
)

// Page sizes in bytes, as laid out by the simulator.
const (
	PhysicsPageSize  = 800
	GraphicsPageSize = 1588
	StaticPageSize   = 820
)

// Shared-memory object names. Windows prefixes them with `Local\`.
const (
	PhysicsPageName  = "acpmf_physics"
	GraphicsPageName = "acpmf_graphics"
	StaticPageName   = "acpmf_static"
)

var (
	// ErrShortPage is returned when a page copy is smaller than its layout.
	ErrShortPage = errors.New("acc: page shorter than layout")
	// ErrUnknownChannel is returned by ParseChannel.
	ErrUnknownChannel = errors.New("acc: unknown channel")
	// ErrUnknownField is returned for a name that is not a Graphics field.
	ErrUnknownField = errors.New("acc: unknown graphics field")
)

// PtrSize is preset so concurrent callers never mutate the shared options.
var pageOptions = &struc.Options{Order: binary.LittleEndian, PtrSize: 32}

// Channel identifies one of the three telemetry pages.
type Channel int

const (
	ChannelPhysics Channel = iota
	ChannelGraphics
	ChannelStatic
)

// Channels lists every channel in initialization order.
var Channels = []Channel{ChannelPhysics, ChannelGraphics, ChannelStatic}

func (c Channel) String() string {
	switch c {
	case ChannelPhysics:
		return "physics"
	case ChannelGraphics:
		return "graphics"
	case ChannelStatic:
		return "static"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// PageName returns the shared-memory object name of the channel.
func (c Channel) PageName() string {
	switch c {
	case ChannelPhysics:
		return PhysicsPageName
	case ChannelGraphics:
		return GraphicsPageName
	case ChannelStatic:
		return StaticPageName
	}
	return ""
}

// PageSize returns the layout size of the channel's page.
func (c Channel) PageSize() int {
	switch c {
	case ChannelPhysics:
		return PhysicsPageSize
	case ChannelGraphics:
		return GraphicsPageSize
	case ChannelStatic:
		return StaticPageSize
	}
	return 0
}

// SeqOffset returns the byte offset of the packet id the simulator bumps on
// every update, or -1 when the page has none.
func (c Channel) SeqOffset() int {
	if c == ChannelStatic {
		return -1
	}
	return 0
}

// ParseChannel maps "physics", "graphics" or "static" to a Channel.
func ParseChannel(s string) (Channel, error) {
	for _, c := range Channels {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

func decode(page []byte, size int, v interface{}) error {
	if len(page) < size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortPage, len(page), size)
	}
	if err := struc.UnpackWithOptions(bytes.NewReader(page[:size]), v, pageOptions); err != nil {
		return fmt.Errorf("acc: unpack: %w", err)
	}
	return nil
}

// DecodePhysics decodes a copy of the physics page.
func DecodePhysics(page []byte) (*Physics, error) {
	p := &Physics{}
	if err := decode(page, PhysicsPageSize, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeGraphics decodes a copy of the graphics page.
func DecodeGraphics(page []byte) (*Graphics, error) {
	g := &Graphics{}
	if err := decode(page, GraphicsPageSize, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DecodeStatic decodes a copy of the static page.
func DecodeStatic(page []byte) (*Static, error) {
	s := &Static{}
	if err := decode(page, StaticPageSize, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode packs a *Physics, *Graphics or *Static into its page layout.
func Encode(v interface{}) ([]byte, error) {
	switch v.(type) {
	case *Physics, *Graphics, *Static:
	default:
		return nil, fmt.Errorf("acc: cannot encode %T", v)
	}
	var buf bytes.Buffer
	if err := struc.PackWithOptions(&buf, v, pageOptions); err != nil {
		return nil, fmt.Errorf("acc: pack: %w", err)
	}
	return buf.Bytes(), nil
}

// layoutSize reports the packed size of a record, used to check the page
// constants against the struct definitions.
func layoutSize(v interface{}) (int, error) {
	return struc.SizeofWithOptions(v, pageOptions)
}
