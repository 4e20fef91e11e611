package engine

import (
	"context"
	"path/filepath"
	"strings"

	"tidy/internal/catalog"
	"tidy/internal/fileops"
	"tidy/internal/logging"
	"tidy/internal/scan"
	"tidy/internal/services"
)

// processFile runs one file through the full pipeline and returns its
// terminal action. Errors become StatusError on the action; they are never
// propagated to the run loop.
func (e *Engine) processFile(ctx context.Context, fd scan.FileDescriptor) Action {
	action := Action{File: fd}

	if e.skipTypes[fd.Extension] {
		action.Status = StatusSkipped
		action.Detail = "skipped by type for this run"
		return action
	}

	res := e.chain.Resolve(fd, e.extractor)
	action.Category = res.Category
	action.Confidence = res.Confidence
	action.Detector = res.Detector
	action.Rationale = res.Rationale

	classifyLog := logging.WithContext(services.WithStage(ctx, "classify"), e.logger)
	classifyLog.Debug("classified",
		logging.String(logging.FieldCategory, res.Category),
		logging.String(logging.FieldDetector, res.Detector),
		logging.Float64("confidence", res.Confidence),
	)

	if res.Confidence < e.cfg.Detection.ConfidenceThreshold {
		done := e.resolveUncertain(&action)
		if done {
			return action
		}
	}

	placement := e.catalog.Apply(action.Detector, action.Category, fd.Name, fd.Extension, e.excerptText(fd))
	action.Category = placement.Category
	action.Subcategory = placement.Subcategory
	action.Routed = placement.Routed

	if !e.opts.MoveOnly {
		if outcome, ok := e.renamers.Resolve(fd, res, e.source); ok {
			action.NewName = outcome.NewName
			action.Renamer = outcome.Renamer
		}
	}

	if e.opts.RenameOnly {
		return e.finishRenameOnly(action)
	}
	return e.finishMove(action)
}

// resolveUncertain applies the uncertainty policy in place. It reports true
// when the file reached a terminal state without further processing.
func (e *Engine) resolveUncertain(action *Action) bool {
	switch e.opts.Uncertain {
	case PolicySkip:
		action.Status = StatusSkipped
		action.Detail = "below confidence threshold"
		return true
	case PolicyInteractive:
		decision, err := e.opts.Prompter.Decide(Request{
			File:       action.File,
			Category:   action.Category,
			Confidence: action.Confidence,
			Rationale:  action.Rationale,
		})
		if err != nil {
			action.Status = StatusError
			action.Err = services.Wrap(services.ErrValidation, "engine", "prompt", action.File.Name, err)
			return true
		}
		switch decision.Kind {
		case DecisionAccept:
			return false
		case DecisionCustom:
			name := strings.TrimSpace(decision.Category)
			if cat, ok := e.catalog.Registry.Lookup(name); ok {
				action.Category = cat.Name
				action.Detector = ""
				action.Detail = "category chosen interactively"
				return false
			}
			action.Category = unsortedName
			action.Detail = "unknown category " + name + ", sent to Unsorted"
			return false
		case DecisionSkip:
			if decision.AllOfType && action.File.Extension != "" {
				e.skipTypes[action.File.Extension] = true
			}
			action.Status = StatusSkipped
			action.Detail = "skipped interactively"
			return true
		default:
			action.Category = unsortedName
			action.Detector = ""
			action.Detail = "rejected interactively"
			return false
		}
	default:
		action.Category = unsortedName
		action.Detail = "below confidence threshold"
		return false
	}
}

func (e *Engine) excerptText(fd scan.FileDescriptor) string {
	excerpt, ok := e.extractor.For(fd)
	if !ok {
		return ""
	}
	return excerpt.Payload
}

func (e *Engine) finishRenameOnly(action Action) Action {
	if !action.Renamed() {
		action.Status = StatusSkipped
		action.Detail = "name already in standard form"
		return action
	}
	if e.opts.DryRun {
		action.Status = StatusRenamed
		action.FinalPath = filepath.Join(filepath.Dir(action.File.Path), action.NewName)
		return action
	}
	final, err := fileops.RenameInPlace(action.File.Path, action.NewName)
	if err != nil {
		action.Status = StatusError
		action.Err = err
		return action
	}
	action.Status = StatusRenamed
	action.FinalPath = final
	return action
}

func (e *Engine) finishMove(action Action) Action {
	destDir, err := e.destinationFor(action)
	if err != nil {
		action.Status = StatusError
		action.Err = err
		return action
	}

	match, found, err := fileops.FindDuplicate(action.File.Path, destDir)
	if err != nil {
		action.Status = StatusError
		action.Err = err
		return action
	}
	if found {
		action.Status = StatusDuplicate
		action.Detail = "identical content at " + match
		if e.opts.DryRun {
			return action
		}
		final, err := fileops.QuarantineDuplicate(action.File.Path, e.cfg.Paths.DestinationDir)
		if err != nil {
			action.Status = StatusError
			action.Err = services.Wrap(services.ErrDuplicate, "engine", "quarantine", action.File.Name, err)
			return action
		}
		action.FinalPath = final
		return action
	}

	name := action.File.Name
	if action.Renamed() {
		name = action.NewName
	}
	if e.opts.DryRun {
		action.Status = StatusMoved
		action.FinalPath = filepath.Join(destDir, name)
		return action
	}

	final, err := fileops.MoveAs(action.File.Path, destDir, name)
	if err != nil {
		action.Status = StatusError
		action.Err = err
		return action
	}
	action.Status = StatusMoved
	action.FinalPath = final
	return action
}

func (e *Engine) destinationFor(action Action) (string, error) {
	folder := catalog.UnsortedFolder()
	if action.Category != unsortedName {
		name, err := e.catalog.Registry.FolderName(action.Category)
		if err != nil {
			return "", err
		}
		folder = name
	}
	dir := filepath.Join(e.cfg.Paths.DestinationDir, folder)
	if action.Subcategory != "" {
		dir = filepath.Join(dir, action.Subcategory)
	}
	return dir, nil
}
