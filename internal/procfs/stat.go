package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CPUStat is one "cpu" line from /proc/stat, in USER_HZ ticks.
type CPUStat struct {
	Name   string
	User   int64
	Nice   int64
	System int64
	Idle   int64
}

// Stat is the parsed content of /proc/stat relevant to this daemon.
type Stat struct {
	CPUs      []CPUStat
	Processes int64
}

// ReadStat parses /proc/stat's cpu lines and the "processes" counter.
func ReadStat() (Stat, error) {
	return readStatFile("/proc/stat")
}

func readStatFile(path string) (Stat, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stat{}, fmt.Errorf("error reading stat: %w", err)
	}
	defer f.Close()

	var out Stat
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(fields[0], "cpu"):
			if len(fields) < 5 {
				continue
			}
			user, _ := strconv.ParseInt(fields[1], 10, 64)
			nice, _ := strconv.ParseInt(fields[2], 10, 64)
			system, _ := strconv.ParseInt(fields[3], 10, 64)
			idle, _ := strconv.ParseInt(fields[4], 10, 64)
			out.CPUs = append(out.CPUs, CPUStat{Name: fields[0], User: user, Nice: nice, System: system, Idle: idle})
		case fields[0] == "processes":
			if len(fields) >= 2 {
				out.Processes, _ = strconv.ParseInt(fields[1], 10, 64)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Stat{}, fmt.Errorf("error reading stat: %w", err)
	}
	return out, nil
}
