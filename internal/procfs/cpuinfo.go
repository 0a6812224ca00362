package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// CPUInfo is one processor entry from /proc/cpuinfo.
type CPUInfo struct {
	Processor int               `json:"processor"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
}

// ReadCPUInfo parses /proc/cpuinfo into one entry per "processor" block.
func ReadCPUInfo() ([]CPUInfo, error) {
	return readCPUInfoFile("/proc/cpuinfo")
}

func readCPUInfoFile(path string) ([]CPUInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading cpuinfo: %w", err)
	}
	defer f.Close()

	var infos []CPUInfo
	current := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				infos = append(infos, toCPUInfo(current))
				current = map[string]string{}
			}
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		current[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if len(current) > 0 {
		infos = append(infos, toCPUInfo(current))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading cpuinfo: %w", err)
	}
	return infos, nil
}

func toCPUInfo(fields map[string]string) CPUInfo {
	proc := 0
	fmt.Sscanf(fields["processor"], "%d", &proc)
	return CPUInfo{
		Processor: proc,
		ModelName: fields["model name"],
		Fields:    fields,
	}
}
