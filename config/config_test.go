package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetBool(ConfigDebug), false)
	is.Equal(c.GetString(ConfigNatsSubject), "rummy.solve")
	is.Equal(c.GetDuration(ConfigSolveTimeout), 10*time.Second)
	is.Equal(c.GetFloat64(ConfigCacheMemoryFraction), 0.05)
}

func TestLoadFlagsAndEnv(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	t.Setenv("RUMMY_NATS_QUEUE", "from-env")
	c := &Config{}
	is.NoErr(c.Load([]string{"--debug", "--threads", "3", "solve", "now"}))
	is.Equal(c.GetBool(ConfigDebug), true)
	is.Equal(c.GetInt(ConfigThreads), 3)
	is.Equal(c.GetString(ConfigNatsQueue), "from-env")
	is.Equal(c.Args(), []string{"solve", "now"})
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	is.NoErr(os.WriteFile(filepath.Join(dir, "rummy.yaml"), []byte("nats-subject: custom\n"), 0644))
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString(ConfigNatsSubject), "custom")

	c = &Config{}
	is.True(c.Load([]string{"--config", filepath.Join(dir, "missing.yaml")}) != nil)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	c := DefaultConfig()
	c.AdjustRelativePaths("/opt/rummy")
	is.Equal(c.GetString(ConfigDataPath), filepath.Join("/opt/rummy", "data"))
}

func TestSanitizedSettings(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	c.Set("nats-token", "hunter2")
	s := c.SanitizedSettings()
	is.Equal(s["nats-token"], "********")
	is.Equal(s[ConfigNatsSubject], "rummy.solve")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
