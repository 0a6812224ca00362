package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// CommandProbe spawns a process and checks its exit status and, optionally,
// its captured stdout (spec §4.4).
type CommandProbe struct {
	base
	Command  string
	Args     []string
	Expected *string
}

func NewCommandProbe(name, description, command string, args []string, expected *string, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *CommandProbe {
	return &CommandProbe{
		base:     newBase(name, description, registry, persist, storeLevel),
		Command:  command,
		Args:     args,
		Expected: expected,
	}
}

func (p *CommandProbe) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	runErr := cmd.Run()
	if runErr != nil {
		err := fmt.Errorf("Error running command: %s", runErr)
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	if p.Expected != nil && stdout.String() != *p.Expected {
		err := fmt.Errorf("Error running command: unexpected stdout %q, expected %q", stdout.String(), *p.Expected)
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	p.SetStatus(status.NewOk())
	return nil
}
