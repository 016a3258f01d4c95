// Package sync implements the synchronization tasks: import, export,
// doctor, translate, remove and move. Each task run constructs an Engine
// with its collaborators, walks the entity graph once and is discarded.
//
// Failure handling follows two regimes. Doctor isolates failures per
// entity: a bad record is logged and its siblings continue. Import,
// export, remove and move treat transport failures as fatal for the
// whole task.
package sync

import (
	"crypto/md5"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
	"github.com/helpscribe/helpsync/internal/store"
	"github.com/helpscribe/helpsync/internal/translate"
	"github.com/helpscribe/helpsync/internal/tree"
	"github.com/helpscribe/helpsync/internal/ui"
)

// PickFunc resolves a duplicate-name conflict interactively. It receives
// a prompt and one label per candidate record and returns the index of
// the record to keep, or -1 to keep all and skip the entity.
type PickFunc func(title string, options []string) (int, error)

// Config carries an Engine's collaborators and task options.
type Config struct {
	Remote     remote.Client
	Translator translate.Client
	Store      *store.Store

	// Printer receives per-entity progress lines. Nil means stdout.
	Printer *ui.Printer
	// Logger receives warnings and diagnostics. If nil, a default logger
	// writing to stderr is used.
	Logger *log.Logger

	// Force resolves duplicate-name conflicts without prompting, keeping
	// the most recently updated record.
	Force bool
	// Pick is consulted for duplicate-name conflicts when Force is unset.
	// When nil, conflicts fall back to the forced policy.
	Pick PickFunc

	// ImageCDN replaces the $IMAGE_ROOT placeholder in image references
	// when article bodies are rendered for the remote system.
	ImageCDN string
	// DisableComments marks newly created articles as closed for comments.
	DisableComments bool
}

// Engine runs synchronization tasks against one local tree.
type Engine struct {
	remote     remote.Client
	translator translate.Client
	store      *store.Store
	loader     *tree.Loader
	saver      *tree.Saver
	printer    *ui.Printer
	logger     *log.Logger

	force           bool
	pick            PickFunc
	imageCDN        string
	disableComments bool
}

// New builds an Engine from cfg. Remote, Translator and Store are
// required; the rest default.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	printer := cfg.Printer
	if printer == nil {
		printer = ui.NewPrinter(os.Stdout)
	}
	return &Engine{
		remote:          cfg.Remote,
		translator:      cfg.Translator,
		store:           cfg.Store,
		loader:          tree.NewLoader(cfg.Store, logger),
		saver:           tree.NewSaver(cfg.Store, logger),
		printer:         printer,
		logger:          logger,
		force:           cfg.Force,
		pick:            cfg.Pick,
		imageCDN:        cfg.ImageCDN,
		disableComments: cfg.DisableComments,
	}
}

// LoadPath loads the entity at a store-relative path, for the remove and
// move tasks. Path validation happens here, before any network call.
func (e *Engine) LoadPath(path string) (model.Entity, error) {
	return e.loader.LoadPath(path)
}

// parentRef returns the remote parent reference an entity provides to its
// children, or nil while the entity has no remote id yet.
func (e *Engine) parentRef(entity model.Entity) *remote.ParentRef {
	id, ok := entity.EntityMeta().RemoteID()
	if !ok {
		return nil
	}
	return &remote.ParentRef{Collection: entity.Kind().Collection(), ID: id}
}

// translateUnits maps an entity's translatable units to the local paths
// the translation store indexes them by.
func translateUnits(entity model.Entity) map[string]string {
	switch v := entity.(type) {
	case *model.Category:
		return map[string]string{"content": v.ContentPath()}
	case *model.Section:
		return map[string]string{"content": v.ContentPath()}
	case *model.Article:
		return map[string]string{"content": v.ContentPath(), "body": v.BodyPath()}
	}
	return nil
}

// recordName returns a record's display name. Group records carry "name",
// article records carry "title".
func recordName(rec remote.Record) string {
	if s, ok := rec["name"].(string); ok && s != "" {
		return s
	}
	if s, ok := rec["title"].(string); ok {
		return s
	}
	return ""
}

func recordID(rec remote.Record) string {
	return model.IDString(rec["id"])
}

// recordTime parses a timestamp field. The zero time sorts a record with
// a missing or unparseable timestamp last.
func recordTime(rec remote.Record, key string) time.Time {
	s, ok := rec[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// idValue converts a canonical id string back into the numeric form the
// remote system hands out, falling back to the string for opaque ids.
func idValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

// payloadChanged compares a local translation payload against the remote
// one field by field, hashing values so equivalent encodings compare
// equal. The locale field is addressing, not content.
func payloadChanged(local, current map[string]any) bool {
	for key, value := range local {
		if key == "locale" {
			continue
		}
		if fieldHash(value) != fieldHash(current[key]) {
			return true
		}
	}
	return false
}

func fieldHash(v any) [md5.Size]byte {
	if v == nil {
		return md5.Sum(nil)
	}
	return md5.Sum([]byte(fmt.Sprintf("%v", v)))
}
