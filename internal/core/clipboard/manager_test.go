package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSystem struct {
	text     string
	readErr  error
	writeErr error
}

func (f *fakeSystem) ReadAll() (string, error) { return f.text, f.readErr }

func (f *fakeSystem) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func TestManager_Register(t *testing.T) {
	m := NewManagerWith(nil)
	_, ok := m.Text()
	assert.False(t, ok)

	m.Copy("hello")
	s, ok := m.Text()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestManager_SystemMirror(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManagerWith(sys)
	m.Copy("привет")
	assert.Equal(t, "привет", sys.text)

	// Text copied by another program wins
	sys.text = "from elsewhere"
	s, ok := m.Text()
	assert.True(t, ok)
	assert.Equal(t, "from elsewhere", s)
}

func TestManager_SystemFailureFallsBack(t *testing.T) {
	sys := &fakeSystem{writeErr: errors.New("no display"), readErr: errors.New("no display")}
	m := NewManagerWith(sys)
	m.Copy("kept")
	s, ok := m.Text()
	assert.True(t, ok)
	assert.Equal(t, "kept", s)
}
