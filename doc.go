// Package rill binds character devices to buffered streams.
//
// A device is any type with a Read([]C) int method, a Write([]C) int
// method, or both (see package types). Container owns a device; Direct
// owns a device through a Container and exposes it through the streambuf
// protocol, picking its behaviour from the methods the device has:
//
//	b, err := rill.NewSource[byte, iodev.Reader]()
//	if err != nil {
//		return err
//	}
//	err = b.OpenValue(iodev.NewReader(os.Stdin))
//	...
//	next := b.SGetC() // peek without consuming
//
// Neither type is safe for concurrent use.
package rill
