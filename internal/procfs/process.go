package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Process is one entry enumerated from /proc/<pid>.
type Process struct {
	Pid  int
	Name string
}

// Statm is the parsed content of /proc/<pid>/statm, in pages.
type Statm struct {
	Size     int64
	Resident int64
	Shared   int64
	Text     int64
	Data     int64
}

// ListProcesses enumerates every numeric entry under /proc and reads its
// command name from /proc/<pid>/comm.
func ListProcesses() ([]Process, error) {
	return listProcessesIn("/proc")
}

func listProcessesIn(procDir string) ([]Process, error) {
	entries, err := os.ReadDir(procDir)
	if err != nil {
		return nil, fmt.Errorf("error reading /proc: %w", err)
	}

	procs := make([]Process, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		name, err := readCommName(procDir, pid)
		if err != nil {
			continue
		}
		procs = append(procs, Process{Pid: pid, Name: name})
	}
	return procs, nil
}

func readCommName(procDir string, pid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("%s/%d/comm", procDir, pid))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ListThreads enumerates the thread IDs of pid from /proc/<pid>/task.
func ListThreads(pid int) ([]int, error) {
	dir := fmt.Sprintf("/proc/%d/task", pid)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dir, err)
	}

	tids := make([]int, 0, len(entries))
	for _, entry := range entries {
		tid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		tids = append(tids, tid)
	}
	return tids, nil
}

// ReadStatm parses /proc/<pid>/statm: "size resident shared text lib data dt".
func ReadStatm(pid int) (Statm, error) {
	return readStatmFile(fmt.Sprintf("/proc/%d/statm", pid))
}

func readStatmFile(path string) (Statm, error) {
	f, err := os.Open(path)
	if err != nil {
		return Statm{}, fmt.Errorf("error reading statm: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return Statm{}, fmt.Errorf("error reading statm: empty file")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 6 {
		return Statm{}, fmt.Errorf("error parsing statm: too few fields")
	}

	parse := func(i int) int64 {
		v, _ := strconv.ParseInt(fields[i], 10, 64)
		return v
	}

	return Statm{
		Size:     parse(0),
		Resident: parse(1),
		Shared:   parse(2),
		Text:     parse(3),
		Data:     parse(5),
	}, nil
}

// ResidentBytes converts the resident page count to bytes using the
// platform page size.
func (s Statm) ResidentBytes() int64 {
	return s.Resident * int64(os.Getpagesize())
}
