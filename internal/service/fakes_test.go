package service

import (
	"strings"
	"sync"
	"time"

	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
)

type fakeTestRepo struct {
	tests       map[string]*model.Test
	createCalls int
	updateErr   error
	nextID      uint
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: make(map[string]*model.Test)}
}

func (f *fakeTestRepo) Create(test *model.Test) error {
	f.createCalls++
	f.nextID++
	test.ID = f.nextID
	test.CreatedAt = time.Now()
	f.tests[strings.ToUpper(test.Code)] = test
	return nil
}

func (f *fakeTestRepo) FindByCode(code string) (*model.Test, error) {
	test, ok := f.tests[strings.ToUpper(code)]
	if !ok {
		return nil, model.ErrTestNotFound
	}
	return test, nil
}

func (f *fakeTestRepo) Update(code, newName, newAnswers string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	test, ok := f.tests[strings.ToUpper(code)]
	if !ok {
		return model.ErrTestNotFound
	}
	test.Name = newName
	test.Answers = newAnswers
	return nil
}

func (f *fakeTestRepo) UpdateScores(code, scores string) error {
	test, ok := f.tests[strings.ToUpper(code)]
	if !ok {
		return model.ErrTestNotFound
	}
	test.Scores = scores
	return nil
}

func (f *fakeTestRepo) FindByCreator(creatorID int64) ([]model.Test, error) {
	var out []model.Test
	for _, test := range f.tests {
		if test.CreatorID == creatorID {
			out = append(out, *test)
		}
	}
	return out, nil
}

func (f *fakeTestRepo) DeleteByCode(code string) error {
	key := strings.ToUpper(code)
	if _, ok := f.tests[key]; !ok {
		return model.ErrTestNotFound
	}
	delete(f.tests, key)
	return nil
}

func (f *fakeTestRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	for key, test := range f.tests {
		if test.CreatedAt.Before(cutoff) {
			delete(f.tests, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeTestRepo) Search(query string, limit int) ([]repository.TestSearchRow, error) {
	var rows []repository.TestSearchRow
	for _, test := range f.tests {
		if strings.Contains(strings.ToLower(test.Code+test.Name), strings.ToLower(query)) {
			rows = append(rows, repository.TestSearchRow{
				ID:        test.ID,
				Code:      test.Code,
				Name:      test.Name,
				CreatedAt: test.CreatedAt,
			})
		}
		if len(rows) == limit {
			break
		}
	}
	return rows, nil
}

func (f *fakeTestRepo) Count() (int64, error) {
	return int64(len(f.tests)), nil
}

type fakeUserRepo struct {
	users       map[int64]*model.User
	upsertCalls int
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]*model.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Upsert(user *model.User) error {
	f.upsertCalls++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUsername(id int64, username string) error {
	user, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Username = username
	return nil
}

func (f *fakeUserRepo) FindByID(id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Exists(id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) AllIDs() ([]int64, error) {
	var ids []int64
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

type attemptKey struct {
	userID int64
	testID uint
}

type recordedSubmission struct {
	userID  int64
	testID  uint
	score   float64
	answers string
}

type fakeAttemptRepo struct {
	attempts    map[attemptKey]*model.UserTestAttempt
	submissions []recordedSubmission
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[attemptKey]*model.UserTestAttempt)}
}

func (f *fakeAttemptRepo) Find(userID int64, testID uint) (*model.UserTestAttempt, error) {
	attempt, ok := f.attempts[attemptKey{userID, testID}]
	if !ok {
		return nil, nil
	}
	return attempt, nil
}

func (f *fakeAttemptRepo) RecordSubmission(userID int64, testID uint, score float64, userAnswers string) error {
	key := attemptKey{userID, testID}
	if attempt, ok := f.attempts[key]; ok {
		attempt.AttemptCount++
		return model.ErrAlreadyAttempted
	}
	f.attempts[key] = &model.UserTestAttempt{UserID: userID, TestID: testID, AttemptCount: 1}
	f.submissions = append(f.submissions, recordedSubmission{userID, testID, score, userAnswers})
	return nil
}

type fakeResultRepo struct {
	statsRows []repository.StatisticsRow
	lbRows    []repository.LeaderboardRow
	lastLimit int
}

func (f *fakeResultRepo) Statistics(testID uint) ([]repository.StatisticsRow, error) {
	return f.statsRows, nil
}

func (f *fakeResultRepo) Leaderboard(limit int) ([]repository.LeaderboardRow, error) {
	f.lastLimit = limit
	if limit < len(f.lbRows) {
		return f.lbRows[:limit], nil
	}
	return f.lbRows, nil
}

func (f *fakeResultRepo) Count() (int64, error) {
	return int64(len(f.statsRows)), nil
}

type sentMessage struct {
	recipientID int64
	text        string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[int64]error)}
}

func (f *fakeNotifier) Send(recipientID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[recipientID]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{recipientID, text})
	return nil
}
