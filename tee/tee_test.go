package tee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moriyoshi/rill"
	"github.com/moriyoshi/rill/streambuf"
	"github.com/moriyoshi/rill/types"
)

type limitSink struct {
	out      []byte
	capacity int
}

func (s *limitSink) Write(p []byte) int {
	n := min(len(p), s.capacity-len(s.out))
	s.out = append(s.out, p[:n]...)
	return n
}

func direct(t *testing.T, capacity int) *rill.Direct[byte, limitSink] {
	b, err := rill.NewSink[byte, limitSink]()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	if !assert.NoError(t, b.OpenValue(limitSink{capacity: capacity})) {
		t.FailNow()
	}
	return b
}

func TestBulk(t *testing.T) {
	t.Parallel()

	a, b, c := streambuf.NewFixed[byte](5), streambuf.NewFixed[byte](3), streambuf.NewFixed[byte](7)
	tee := New[byte](Bulk, a, b, c)
	assert.Equal(t, 3, tee.Write([]byte("0123456789")))
	assert.Equal(t, "01234", string(a.Pending()))
	assert.Equal(t, "012", string(b.Pending()))
	assert.Equal(t, "0123456", string(c.Pending()))
}

func TestBulkDirect(t *testing.T) {
	t.Parallel()

	a, b := direct(t, 8), direct(t, 8)
	tee := New[byte](Bulk, a, b)
	assert.Equal(t, 5, tee.Write([]byte("hello")))
	assert.Equal(t, 3, tee.Write([]byte("world")))
	assert.Equal(t, "hellowor", string(a.Device().out))
	assert.Equal(t, "hellowor", string(b.Device().out))
}

func TestChecked(t *testing.T) {
	t.Parallel()

	a, b := streambuf.NewFixed[byte](5), streambuf.NewFixed[byte](3)
	tee := New[byte](Checked, a, b)
	assert.Equal(t, 3, tee.Write([]byte("ABCDE")))
	assert.Equal(t, "ABC", string(a.Pending()))
	assert.Equal(t, "ABC", string(b.Pending()))

	// the refusing target still refuses, and the others stay in step
	assert.Equal(t, 0, tee.Write([]byte("D")))
	assert.Equal(t, "ABC", string(a.Pending()))
}

func TestCheckedStopsAtFirstRefusal(t *testing.T) {
	t.Parallel()

	// unbuffered targets cannot take a character back, so the ones in
	// front of the refusing target keep it
	a, b, c := direct(t, 5), direct(t, 3), direct(t, 5)
	tee := New[byte](Checked, a, b, c)
	assert.Equal(t, 3, tee.Write([]byte("ABCDE")))
	assert.Equal(t, "ABCD", string(a.Device().out))
	assert.Equal(t, "ABC", string(b.Device().out))
	assert.Equal(t, "ABC", string(c.Device().out))
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	for _, policy := range []Policy{Bulk, Checked} {
		tee := New[byte](policy)
		assert.Equal(t, 0, tee.Len())
		assert.Equal(t, 4, tee.Write([]byte("abcd")))
		assert.Equal(t, 0, tee.Write(nil))
	}
}

func TestNilTarget(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "tee: target 1 is nil", func() {
		New[byte](Bulk, streambuf.NewFixed[byte](1), nil)
	})
}

func TestTeeAsDevice(t *testing.T) {
	t.Parallel()

	a, b := streambuf.NewFixed[rune](4), streambuf.NewFixed[rune](2)
	out, err := rill.NewSink[rune, Tee[rune]]()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	if !assert.NoError(t, out.OpenValue(*New[rune](Checked, a, b))) {
		t.FailNow()
	}
	assert.Equal(t, Checked, out.Device().Policy())
	assert.Equal(t, types.ToInt('α'), out.SPutC('α'))
	assert.Equal(t, 1, out.SPutN([]rune("βγ")))
	assert.Equal(t, types.EOF, out.SPutC('δ'))
	assert.Equal(t, "αβ", string(a.Pending()))
	assert.Equal(t, "αβ", string(b.Pending()))
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("checked")
	assert.NoError(t, err)
	assert.Equal(t, Checked, p)
	assert.Equal(t, "checked", p.String())

	p, err = ParsePolicy("bulk")
	assert.NoError(t, err)
	assert.Equal(t, "bulk", p.String())

	_, err = ParsePolicy("eager")
	assert.EqualError(t, err, `unknown tee policy "eager"`)
	assert.Equal(t, "Policy(7)", Policy(7).String())
}
