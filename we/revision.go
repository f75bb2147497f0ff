package we

import (
	"encoding/binary"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

// Revision is a ULID whose entropy carries the position of the event in its
// aggregate, so revisions of one aggregate sort in publish order.
type Revision string

const InitialRevision = Revision("00000000000000000000000000")

// EncodeRevision builds the revision of the event at sequence, stamped with t.
// Callers must not pass a t earlier than the previous revision's timestamp.
func EncodeRevision(t time.Time, sequence uint64) (Revision, error) {
	r := &ulid.ULID{}
	if err := r.SetTime(ulid.Timestamp(t)); err != nil {
		return "", errors.Wrap(err, "failed to encode revision time")
	}

	entropy := make([]byte, 10)
	binary.BigEndian.PutUint64(entropy[2:], sequence)
	if err := r.SetEntropy(entropy); err != nil {
		return "", errors.Wrap(err, "failed to encode revision sequence")
	}

	return Revision(r.String()), nil
}

// Sequence returns the position encoded by EncodeRevision. InitialRevision is
// sequence zero.
func (revision Revision) Sequence() (uint64, error) {
	parsed, err := ulid.Parse(revision.String())
	if err != nil {
		return 0, errors.Wrapf(err, "invalid revision %s", revision)
	}

	return binary.BigEndian.Uint64(parsed.Entropy()[2:]), nil
}

func (revision Revision) Time() time.Time {
	v := ulid.MustParse(string(revision))
	return ulid.Time(v.Time())
}

func (revision Revision) Timestamp() Timestamp {
	return TimestampFromTime(revision.Time())
}

func (revision Revision) String() string {
	return string(revision)
}
