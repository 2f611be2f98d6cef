package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"

	app "fragment-analyzer/internal/application"
	"fragment-analyzer/internal/container"
	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/infrastructure/imageio"
)

const (
	msgStart = `Fragment analyzer. Load an image with a reference object and its pieces.
Type "help" for the list of commands.`

	msgHelp = `Commands:
  load <path>             load an image and analyze it
  set <option> <value>    change a parameter, the image is analyzed again
  show                    print current parameters
  reset                   restore default parameters
  report                  print the last report
  save [path]             save the image with outlines and labels
  mask <path>             save the binary mask
  help                    this help
  quit                    exit

Options: blur, threshold, morphSize, morphClose, morphOpen, minArea,
useAdjusted (on/off), noOriginal (on/off), weight (empty to clear), unit`

	msgAwaitingImage  = "Load an image first: load <path>"
	msgUnknownCommand = "Unknown command. Type \"help\" for the list of commands."
	msgUsageLoad      = "Usage: load <path>"
	msgUsageSet       = "Usage: set <option> <value>"
	msgUsageMask      = "Usage: mask <path>"
	msgDefaultsSet    = "Parameters restored to defaults."
	msgSaved          = "Saved %s"
	msgWarning        = "⚠️ %v"
)

// Console построчный интерфейс управления одной сессией анализа.
type Console struct {
	container *container.Container
	sessionID int64
	initial   entity.Configuration
	started   bool
	logger    *slog.Logger
}

// New создаёт консоль; initial задаёт стартовые параметры сессии.
func New(c *container.Container, initial entity.Configuration, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		container: c,
		sessionID: 1,
		initial:   initial,
		logger:    logger,
	}
}

// Run читает команды из in до quit или конца ввода.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := c.start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, msgStart)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := c.HandleLine(ctx, out, scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// HandleLine выполняет одну команду. Возвращает true для quit.
func (c *Console) HandleLine(ctx context.Context, out io.Writer, line string) bool {
	if err := c.start(ctx); err != nil {
		fmt.Fprintf(out, msgWarning+"\n", err)
		return false
	}
	command, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	if command == "" {
		return false
	}
	c.logger.Debug("command", "command", command, "session_id", c.sessionID)

	switch strings.ToLower(command) {
	case "help":
		fmt.Fprintln(out, msgHelp)

	case "load":
		if rest == "" {
			fmt.Fprintln(out, msgUsageLoad)
			return false
		}
		c.handleLoad(ctx, out, rest)

	case "set":
		name, value, _ := strings.Cut(rest, " ")
		if name == "" {
			fmt.Fprintln(out, msgUsageSet)
			return false
		}
		session, err := c.container.SessionService.SetOption(ctx, c.sessionID, name, value)
		c.printOutcome(out, session, err)

	case "show":
		c.handleShow(ctx, out)

	case "reset":
		session, err := c.container.SessionService.Reset(ctx, c.sessionID)
		fmt.Fprintln(out, msgDefaultsSet)
		c.printOutcome(out, session, err)

	case "report":
		session, result, err := c.container.SessionService.RequireResult(ctx, c.sessionID)
		if err != nil {
			c.printMissing(out, session, err)
			return false
		}
		fmt.Fprintln(out, result.Report)

	case "save":
		path := rest
		if path == "" {
			path = imageio.DefaultExportName
		}
		c.handleSave(ctx, out, path)

	case "mask":
		if rest == "" {
			fmt.Fprintln(out, msgUsageMask)
			return false
		}
		c.handleMask(ctx, out, rest)

	case "quit", "exit":
		return true

	default:
		fmt.Fprintln(out, msgUnknownCommand)
	}
	return false
}

func (c *Console) start(ctx context.Context) error {
	if c.started {
		return nil
	}
	if _, err := c.container.SessionService.SetConfig(ctx, c.sessionID, c.initial); err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	c.started = true
	return nil
}

func (c *Console) handleLoad(ctx context.Context, out io.Writer, path string) {
	img, err := c.container.Loader.Load(path)
	if err != nil {
		c.logger.Warn("load image", "path", path, "err", err)
		fmt.Fprintf(out, msgWarning+"\n", err)
		return
	}
	session, err := c.container.SessionService.LoadImage(ctx, c.sessionID, path, img)
	c.printOutcome(out, session, err)
}

func (c *Console) handleShow(ctx context.Context, out io.Writer) {
	session, err := c.container.SessionService.Get(ctx, c.sessionID)
	if err != nil {
		fmt.Fprintf(out, msgWarning+"\n", err)
		return
	}
	if session.ImageName != "" {
		fmt.Fprintf(out, "image       = %s\n", session.ImageName)
	}
	for _, name := range app.OptionNames() {
		fmt.Fprintf(out, "%-11s = %s\n", name, app.OptionValue(session.Config, name))
	}
	fmt.Fprintf(out, "%-11s = %s\n", "state", session.State)
}

func (c *Console) handleSave(ctx context.Context, out io.Writer, path string) {
	session, result, err := c.container.SessionService.RequireResult(ctx, c.sessionID)
	if err != nil {
		c.printMissing(out, session, err)
		return
	}
	rendered, err := c.container.Renderer.Render(session.Image, result.Overlays)
	if err != nil {
		fmt.Fprintf(out, msgWarning+"\n", err)
		return
	}
	c.export(out, rendered, path)
}

func (c *Console) handleMask(ctx context.Context, out io.Writer, path string) {
	session, result, err := c.container.SessionService.RequireResult(ctx, c.sessionID)
	if err != nil {
		c.printMissing(out, session, err)
		return
	}
	c.export(out, result.Mask.Image(), path)
}

func (c *Console) export(out io.Writer, img image.Image, path string) {
	if err := c.container.Exporter.Save(img, path); err != nil {
		c.logger.Warn("export image", "path", path, "err", err)
		fmt.Fprintf(out, msgWarning+"\n", err)
		return
	}
	c.logger.Info("image exported", "path", path)
	fmt.Fprintf(out, msgSaved+"\n", path)
}

// printOutcome печатает отчёт после изменения либо сообщение об ошибке.
func (c *Console) printOutcome(out io.Writer, session *entity.Session, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownOption), errors.Is(err, app.ErrInvalidOption):
		fmt.Fprintf(out, msgWarning+"\n", err)
	case err != nil && session != nil && session.LastError != "":
		fmt.Fprintln(out, session.LastError)
	case err != nil:
		fmt.Fprintf(out, msgWarning+"\n", err)
	case session.Result == nil:
		fmt.Fprintln(out, msgAwaitingImage)
	default:
		fmt.Fprintln(out, session.Result.Report)
	}
}

func (c *Console) printMissing(out io.Writer, session *entity.Session, err error) {
	switch {
	case errors.Is(err, app.ErrNoImage):
		fmt.Fprintln(out, msgAwaitingImage)
	case errors.Is(err, app.ErrNoResult) && session.LastError != "":
		fmt.Fprintln(out, session.LastError)
	default:
		fmt.Fprintf(out, msgWarning+"\n", err)
	}
}
