package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/solarlune/ldtkgo"
)

// DefaultProject is the project shipped with the game.
const DefaultProject = "TowerDefence.ldtk"

//go:embed *.ldtk
var LevelsFS embed.FS

var ErrLevelNotFound = errors.New("level not found")

// LoadProject reads a project from disk if the path exists, falling back to
// the embedded copy under the same base name.
func LoadProject(name string) (*Project, error) {
	if name == "" {
		name = DefaultProject
	}
	if _, err := os.Stat(name); err == nil {
		dir, base := filepath.Split(name)
		if dir == "" {
			dir = "."
		}
		return LoadProjectFS(os.DirFS(dir), base)
	}
	return LoadProjectFS(LevelsFS, cleanLevelPath(name))
}

// LoadProjectFS reads a project, and any external level files it references,
// from fsys.
func LoadProjectFS(fsys fs.FS, name string) (*Project, error) {
	if _, err := fs.Stat(fsys, name); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	p, err := ldtkgo.Open(name, fsys)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return &Project{Project: p}, nil
}

// ParseProject decodes project JSON. External level files are not resolved.
func ParseProject(data []byte) (*Project, error) {
	p, err := ldtkgo.Read(data)
	if err != nil {
		return nil, err
	}
	return &Project{Project: p}, nil
}

// LevelSelection picks one level of a project. Identifier wins over IID,
// which wins over Index.
type LevelSelection struct {
	Index      int
	Identifier string
	IID        string
}

func (s LevelSelection) String() string {
	switch {
	case s.Identifier != "":
		return fmt.Sprintf("identifier %q", s.Identifier)
	case s.IID != "":
		return fmt.Sprintf("iid %s", s.IID)
	}
	return fmt.Sprintf("index %d", s.Index)
}

// Select returns the level matching sel.
func (p *Project) Select(sel LevelSelection) (*ldtkgo.Level, error) {
	if p == nil || p.Project == nil {
		return nil, fmt.Errorf("levels: select %s: %w", sel, ErrLevelNotFound)
	}
	switch {
	case sel.Identifier != "":
		if lvl := p.LevelByIdentifier(sel.Identifier); lvl != nil {
			return lvl, nil
		}
	case sel.IID != "":
		for _, lvl := range p.Levels {
			if lvl != nil && lvl.IID == sel.IID {
				return lvl, nil
			}
		}
	case sel.Index >= 0 && sel.Index < len(p.Levels) && p.Levels[sel.Index] != nil:
		return p.Levels[sel.Index], nil
	}
	return nil, fmt.Errorf("levels: select %s: %w", sel, ErrLevelNotFound)
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return path.Base(s)
}
