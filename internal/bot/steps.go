package bot

// step tags the field a multi-turn form is currently waiting for.
type step int

const (
	stepSupportMessage step = iota + 1
	stepSellerID
	stepSellerName
	stepSellerPrice
	stepReviewSubject
	stepReviewText
	stepReviewEditText
	stepGenCount
)

// session is the in-progress state of one form: the awaited step plus the
// fields collected so far. A user has at most one live session; starting a
// new workflow silently replaces it. Invalid input re-prompts on the same
// step without touching the bag.
type session struct {
	step   step
	fields map[string]string
}

// sessions is touched only from the update-consuming goroutine, so it needs
// no locking. They are not persisted: a restart drops in-progress forms.
type sessions struct {
	m map[int64]*session
}

func newSessions() *sessions { return &sessions{m: map[int64]*session{}} }

func (s *sessions) begin(userID int64, st step) *session {
	sess := &session{step: st, fields: map[string]string{}}
	s.m[userID] = sess
	return sess
}

func (s *sessions) get(userID int64) *session { return s.m[userID] }

func (s *sessions) clear(userID int64) { delete(s.m, userID) }
