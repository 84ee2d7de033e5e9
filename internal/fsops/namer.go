package fsops

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

const maxNameAttempts = 10000

// Namer allocates free destination names within a single run.
type Namer struct {
	token  string
	issued map[string]bool
}

// NewNamer returns a Namer whose rename token is the unix time of start.
func NewNamer(start time.Time) *Namer {
	return &Namer{
		token:  strconv.FormatInt(start.Unix(), 10),
		issued: make(map[string]bool),
	}
}

// Free returns a name in dir that is not occupied and was not handed out before.
//
// The original name is preferred; then base_<token>ext, then base_<token>-2ext, and so on.
func (n *Namer) Free(dir, name string) (string, error) {
	base, ext := SplitExt(name)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := n.candidate(base, ext, attempt)
		key := filepath.Join(dir, candidate)
		if n.issued[key] {
			continue
		}

		taken, err := Exists(key)
		if err != nil {
			return "", err
		}
		if !taken {
			n.issued[key] = true
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted names for %s in %s", name, dir)
}

func (n *Namer) candidate(base, ext string, attempt int) string {
	switch attempt {
	case 0:
		return base + ext
	case 1:
		return fmt.Sprintf("%s_%s%s", base, n.token, ext)
	default:
		return fmt.Sprintf("%s_%s-%d%s", base, n.token, attempt, ext)
	}
}
