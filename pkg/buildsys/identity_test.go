package buildsys

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIdentityIsDeterministic(t *testing.T) {
	a := NewBuildIdentity("abc123", testTime)
	b := NewBuildIdentity("abc123", testTime.Add(time.Hour))
	c := NewBuildIdentity("def456", testTime)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)

	id, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestBuildIdentityKnownID(t *testing.T) {
	assert.Equal(t, "e32be064-a93a-57bf-b3a3-b92fdb386ee3", NewBuildIdentity("abc123", testTime).ID)
	assert.Equal(t, "a82c09fc-5fe4-503e-b1d1-b6fddc099632", NewBuildIdentity("0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c", testTime).ID)
}

func TestBuildIdentityTimeIsUTC(t *testing.T) {
	local := time.FixedZone("CEST", 2*60*60)
	ident := NewBuildIdentity("abc123", testTime.In(local))
	assert.Equal(t, "2026-10-15 12:30:45.123456", ident.BuildTime)
}

func TestBuildIdentityWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ident := NewBuildIdentity("abc123", testTime)
	require.NoError(t, ident.WriteFile(path))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"`+ident.ID+`","revision":"abc123","buildtime":"2026-10-15 12:30:45.123456"}`, string(data))
}

func TestRemoveIdentityIgnoresMissingFiles(t *testing.T) {
	removeIdentity(filepath.Join(t.TempDir(), "config.json"))
}
