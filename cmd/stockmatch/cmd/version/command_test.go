package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/cmdtest"
)

func TestVersion(t *testing.T) {
	app := &appcontext.Mock{Format: "json", VersionString: "1.2.3"}

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)

	var info Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestVersionTable(t *testing.T) {
	app := &appcontext.Mock{Format: "table", VersionString: "1.2.3"}

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}
