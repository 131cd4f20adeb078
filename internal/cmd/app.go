package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
	"github.com/felixgeelhaar/rehearse/internal/log"
	"github.com/felixgeelhaar/rehearse/internal/session"
)

// stdinArg names standard input where a file argument is expected.
const stdinArg = "-"

func (a *app) catalog() (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	path := a.cfg.Catalog.Path
	if path != "" {
		c, err = catalog.LoadFile(path)
	} else {
		c, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}

	if a.logger.Enabled(context.Background(), log.LevelDebug) {
		fp, _ := c.Fingerprint()
		a.logger.Debug("catalog loaded", "path", path, "questions", c.Len(), "fingerprint", fp)
	}
	return c, nil
}

func (a *app) engine() (*feedback.Engine, error) {
	if path := a.cfg.Feedback.RulesPath; path != "" {
		rules, err := feedback.LoadRules(path)
		if err != nil {
			return nil, err
		}
		return feedback.NewEngine(rules)
	}
	return feedback.DefaultEngine(), nil
}

// machine builds a session machine from the configured catalog, rules and
// seed. A zero seed shuffles randomly.
func (a *app) machine(seed uint64) (*session.Machine, *catalog.Catalog, error) {
	c, err := a.catalog()
	if err != nil {
		return nil, nil, err
	}
	e, err := a.engine()
	if err != nil {
		return nil, nil, err
	}

	var opts []session.MachineOption
	if seed != 0 {
		opts = append(opts, session.WithSeed(seed))
	}
	return session.NewMachine(c, e, opts...), c, nil
}

// readSource reads a named file, or standard input for "-".
func readSource(cmd *cobra.Command, name string) (string, error) {
	if name == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.NewFileReadError("standard input", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileNotFoundError(name)
		}
		return "", errors.NewFileReadError(name, err)
	}
	return string(data), nil
}
