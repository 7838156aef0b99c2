//go:build windows

package shm

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procOpenFileMappingW = windows.NewLazySystemDLL("kernel32.dll").NewProc("OpenFileMappingW")

// ObjectName returns the session-local kernel object name of the region.
func ObjectName(name string) string {
	return `Local\` + name
}

// MapRegion maps or creates a shared memory region (Windows implementation).
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if opts.Size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(ObjectName(opts.Name))
	if err != nil {
		return nil, err
	}
	access := uint32(windows.FILE_MAP_READ)
	if opts.Writable {
		access |= windows.FILE_MAP_WRITE
	}

	var h windows.Handle
	if opts.Create {
		h, err = windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(opts.Size), name)
		// attaching to the simulator's mapping reports ERROR_ALREADY_EXISTS with a valid handle
		if err != nil && !errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			return nil, fmt.Errorf("CreateFileMapping %s: %w", ObjectName(opts.Name), err)
		}
	} else {
		r, _, callErr := procOpenFileMappingW.Call(uintptr(access), 0, uintptr(unsafe.Pointer(name)))
		if r == 0 {
			return nil, fmt.Errorf("OpenFileMapping %s: %w", ObjectName(opts.Name), callErr)
		}
		h = windows.Handle(r)
	}

	addr, err := windows.MapViewOfFile(h, access, 0, 0, uintptr(opts.Size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, fmt.Errorf("MapViewOfFile: %w", err)
	}
	return &MappedRegion{
		Addr:   unsafe.Slice((*byte)(unsafe.Pointer(addr)), opts.Size),
		Name:   opts.Name,
		Size:   opts.Size,
		handle: uintptr(h),
	}, nil
}

// UnmapRegion unmaps and closes the shared memory region (Windows implementation).
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&region.Addr[0]))); err != nil {
		return fmt.Errorf("UnmapViewOfFile: %w", err)
	}
	region.Addr = nil
	if region.handle != 0 {
		if err := windows.CloseHandle(windows.Handle(region.handle)); err != nil {
			return fmt.Errorf("CloseHandle: %w", err)
		}
		region.handle = 0
	}
	return nil
}

// RemoveRegion is a no-op: the kernel drops the mapping with its last handle.
func RemoveRegion(name string) error {
	return nil
}
