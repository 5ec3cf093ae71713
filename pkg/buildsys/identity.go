package buildsys

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// IdentityNamespace is the UUID namespace build IDs are derived from
var IdentityNamespace = uuid.MustParse("fb65c2fe-36a4-4a42-97a1-afe8d41177ac")

const buildTimeFormat = "2006-01-02 15:04:05.000000"

// BuildIdentity is written into the Unity project's resources so the game knows which
// revision it was built from.
type BuildIdentity struct {
	ID        string `json:"id"`
	Revision  string `json:"revision"`
	BuildTime string `json:"buildtime"`
}

// NewBuildIdentity derives the build ID from revision. The same revision always yields
// the same ID.
func NewBuildIdentity(revision string, now time.Time) BuildIdentity {
	return BuildIdentity{
		ID:        uuid.NewSHA1(IdentityNamespace, []byte(revision)).String(),
		Revision:  revision,
		BuildTime: now.UTC().Format(buildTimeFormat),
	}
}

// WriteFile stores the identity as JSON
func (b BuildIdentity) WriteFile(path string) error {
	data, err := json.Marshal(b)
	if err != nil {
		return eris.Wrap(err, "failed to encode build identity")
	}

	err = ioutil.WriteFile(path, data, 0660)
	if err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}

	return nil
}

// removeIdentity deletes the identity file and the .meta file Unity generates next to it.
// Errors are ignored; either file may be missing.
func removeIdentity(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + ".meta")
}
