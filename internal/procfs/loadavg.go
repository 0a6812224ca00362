// Package procfs implements the /proc parsers the probe framework consumes.
// Specified only by interface in spec §1 ("the /proc file decoders... are
// specified only by the interface the core consumes"); grounded field-for-
// field on original_source/monitoring-agent-lib/src/proc.
package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadAvg is the parsed content of /proc/loadavg.
type LoadAvg struct {
	Load1          float64
	Load5          float64
	Load15         float64
	RunningProcs   int
	TotalProcs     int
}

// ReadLoadAvg parses /proc/loadavg: "1min 5min 15min running/total lastpid".
func ReadLoadAvg() (LoadAvg, error) {
	return readLoadAvgFile("/proc/loadavg")
}

func readLoadAvgFile(path string) (LoadAvg, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadAvg{}, fmt.Errorf("error reading loadavg: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return LoadAvg{}, fmt.Errorf("error reading loadavg: empty file")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 4 {
		return LoadAvg{}, fmt.Errorf("error parsing loadavg: too few fields")
	}

	load1, err1 := strconv.ParseFloat(fields[0], 64)
	load5, err2 := strconv.ParseFloat(fields[1], 64)
	load15, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return LoadAvg{}, fmt.Errorf("error parsing loadavg: malformed averages")
	}

	procParts := strings.Split(fields[3], "/")
	if len(procParts) != 2 {
		return LoadAvg{}, fmt.Errorf("error parsing loadavg: malformed process counts")
	}
	running, _ := strconv.Atoi(procParts[0])
	total, _ := strconv.Atoi(procParts[1])

	return LoadAvg{
		Load1:        load1,
		Load5:        load5,
		Load15:       load15,
		RunningProcs: running,
		TotalProcs:   total,
	}, nil
}
