package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(api EditorAPI) error {
	*p.log = append(*p.log, "init:"+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown:"+p.name)
	return nil
}

func TestManager_Lifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "broken", initErr: errors.New("boom"), log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "b", log: &log}))

	assert.Error(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "", log: &log}))

	m.InitializePlugins(nil)
	m.ShutdownPlugins()
	m.ShutdownPlugins()

	assert.Equal(t, []string{"init:a", "init:broken", "init:b", "shutdown:b", "shutdown:a"}, log)

	p, ok := m.GetPlugin("b")
	require.True(t, ok)
	assert.Equal(t, "b", p.Name())
}
