package procfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadLoadAvgFile(t *testing.T) {
	path := writeFixture(t, "loadavg", "0.52 0.41 0.39 2/456 12345\n")
	load, err := readLoadAvgFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.52, load.Load1)
	assert.Equal(t, 0.41, load.Load5)
	assert.Equal(t, 0.39, load.Load15)
	assert.Equal(t, 2, load.RunningProcs)
	assert.Equal(t, 456, load.TotalProcs)
}

func TestReadLoadAvgFileMalformed(t *testing.T) {
	path := writeFixture(t, "loadavg", "not a loadavg file\n")
	_, err := readLoadAvgFile(path)
	assert.Error(t, err)
}

func TestReadMeminfoFile(t *testing.T) {
	path := writeFixture(t, "meminfo", "MemTotal:       16384000 kB\nMemFree:         4096000 kB\nSwapTotal:       2048000 kB\nSwapFree:        2048000 kB\n")
	mem, err := readMeminfoFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(16384000), mem.MemTotal)
	assert.Equal(t, int64(4096000), mem.MemFree)
	assert.Equal(t, int64(2048000), mem.SwapTotal)
	assert.Equal(t, int64(2048000), mem.SwapFree)
}

func TestPercentUsed(t *testing.T) {
	assert.InDelta(t, 75.0, PercentUsed(250, 1000), 0.001)
	assert.Equal(t, 0.0, PercentUsed(10, 0))
}

func TestReadStatmFile(t *testing.T) {
	path := writeFixture(t, "statm", "1000 500 100 50 0 400 0\n")
	statm, err := readStatmFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), statm.Size)
	assert.Equal(t, int64(500), statm.Resident)
	assert.Equal(t, int64(100), statm.Shared)
	assert.Equal(t, int64(50), statm.Text)
	assert.Equal(t, int64(400), statm.Data)
	assert.Equal(t, int64(500*os.Getpagesize()), statm.ResidentBytes())
}

func TestListProcessesIn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "123"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "123", "comm"), []byte("nginx\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notapid"), 0755))

	procs, err := listProcessesIn(dir)
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, 123, procs[0].Pid)
	assert.Equal(t, "nginx", procs[0].Name)
}

func TestReadCPUInfoFile(t *testing.T) {
	path := writeFixture(t, "cpuinfo", "processor\t: 0\nmodel name\t: Test CPU\n\nprocessor\t: 1\nmodel name\t: Test CPU\n\n")
	infos, err := readCPUInfoFile(path)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].Processor)
	assert.Equal(t, "Test CPU", infos[0].ModelName)
	assert.Equal(t, 1, infos[1].Processor)
}

func TestReadStatFile(t *testing.T) {
	path := writeFixture(t, "stat", "cpu  100 10 50 800 5 0 2 0 0 0\ncpu0 100 10 50 800 5 0 2 0 0 0\nprocesses 543\n")
	stat, err := readStatFile(path)
	require.NoError(t, err)
	require.Len(t, stat.CPUs, 2)
	assert.Equal(t, "cpu", stat.CPUs[0].Name)
	assert.Equal(t, int64(100), stat.CPUs[0].User)
	assert.Equal(t, int64(543), stat.Processes)
}
