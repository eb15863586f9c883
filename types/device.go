package types

// Char is the set of element types a device can move.
type Char interface {
	~uint8 | ~uint16 | ~int32 | ~uint32
}

// Int is the widened form of a character used by the stream protocol so
// that EOF can never collide with a valid character.
type Int int64

// EOF is the end-of-sequence sentinel.
const EOF Int = -1

// ToInt widens c. Signed characters are reinterpreted as unsigned so that
// no character maps onto EOF.
func ToInt[C Char](c C) Int {
	return Int(uint32(c))
}

// ToChar narrows i back to a character. i must not be EOF.
func ToChar[C Char](i Int) C {
	return C(i)
}

// NotEOF returns i unless it is EOF, in which case it returns a value that
// is guaranteed not to be EOF.
func NotEOF(i Int) Int {
	if i == EOF {
		return 0
	}
	return i
}

// Source is a device that produces characters.
//
// Read fills at most len(p) characters and returns how many it produced.
// Zero means the device has nothing more to give. A return value above
// len(p) is a broken device.
type Source[C Char] interface {
	Read(p []C) int
}

// Sink is a device that consumes characters.
//
// Write accepts at most len(p) characters and returns how many it took.
// Zero means the device refuses further writes.
type Sink[C Char] interface {
	Write(p []C) int
}

// Duplex is a device that is both a Source and a Sink.
type Duplex[C Char] interface {
	Source[C]
	Sink[C]
}
