package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultJumpForce(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, math.Sqrt(2*25*2), cfg.Movement.JumpForce(), 1e-9)
	assert.Equal(t, 3, cfg.Movement.MaxJumps)
	require.NotNil(t, cfg.Combat.AttackOrigin)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load([]byte(`
movement:
  max_jumps: 2
  dash_speed: 15
combat:
  light_damage: 6
`))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Movement.MaxJumps)
	assert.Equal(t, 15.0, cfg.Movement.DashSpeed)
	assert.Equal(t, 6.0, cfg.Combat.LightDamage)

	// untouched keys keep defaults
	def := Default()
	assert.Equal(t, def.Movement.Gravity, cfg.Movement.Gravity)
	assert.Equal(t, def.Camera, cfg.Camera)
}

func TestLoadNullAttackOrigin(t *testing.T) {
	cfg, err := Load([]byte("combat:\n  attack_origin: null\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Combat.AttackOrigin)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte("movement: [1, 2"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("movement:\n  max_jumps: 2\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { changed <- c }, nil)
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("movement:\n  max_jumps: 4\n"), 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, 4, cfg.Movement.MaxJumps)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
