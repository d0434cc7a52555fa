package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/repository"
)

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.GameSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]domain.GameSession{}}
}

func (f *fakeSessionStore) Put(_ context.Context, session domain.GameSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (*domain.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := session
	return &copied, nil
}

func (f *fakeSessionStore) Remove(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []domain.GameResult
	top     []domain.LeaderboardEntry
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{}
}

func (f *fakeResultRepo) Create(_ context.Context, result domain.GameResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
	return nil
}

func (f *fakeResultRepo) TopN(_ context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if len(f.top) > n {
		return f.top[:n], nil
	}
	return f.top, nil
}

func (f *fakeResultRepo) DailyTopN(_ context.Context, _ time.Time, n int) ([]domain.LeaderboardEntry, error) {
	return f.TopN(context.Background(), n)
}

func (f *fakeResultRepo) HistoryFor(_ context.Context, userID string) ([]domain.HistoryEntry, domain.PlayerStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		history       []domain.HistoryEntry
		totalScore    int
		totalAttempts int
	)
	for _, result := range f.results {
		if result.UserID != userID {
			continue
		}
		history = append(history, domain.HistoryEntry{
			Date:     result.AchievedAt,
			Score:    result.Score,
			Attempts: result.AttemptsUsed,
		})
		totalScore += result.Score
		totalAttempts += result.AttemptsUsed
	}

	stats := domain.PlayerStats{TotalGames: len(history)}
	if stats.TotalGames > 0 {
		stats.AverageScore = float64(totalScore) / float64(stats.TotalGames)
		stats.AverageAttempts = float64(totalAttempts) / float64(stats.TotalGames)
	}
	return history, stats, nil
}

func (f *fakeResultRepo) HasDailyResult(_ context.Context, userID string, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := domain.ChallengeDate(date)
	for _, result := range f.results {
		if result.UserID == userID && result.Daily && domain.ChallengeDate(result.AchievedAt).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]domain.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash, passwordAlgo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.PasswordAlgo = passwordAlgo
	f.users[userID] = user
	return nil
}

func (f *fakeUserRepo) RecordLogin(_ context.Context, userID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLogin = &at
	f.users[userID] = user
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]domain.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]domain.PasswordResetToken{}}
}

func (f *fakeTokenRepo) CreatePasswordReset(_ context.Context, token domain.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) GetPasswordResetByHash(_ context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			copied := token
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenRepo) MarkPasswordResetUsed(_ context.Context, tokenID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[tokenID]
	if !ok {
		return repository.ErrNotFound
	}
	token.UsedAt = &at
	f.tokens[tokenID] = token
	return nil
}

type fakeEventPublisher struct {
	mu             sync.Mutex
	gameCompleted  []domain.GameCompletedEvent
	dailyCompleted []domain.DailyChallengeCompletedEvent
	registered     []domain.UserRegisteredEvent
	resetRequested []domain.PasswordResetRequestedEvent
}

func newFakeEventPublisher() *fakeEventPublisher {
	return &fakeEventPublisher{}
}

func (f *fakeEventPublisher) PublishGameCompleted(_ context.Context, event domain.GameCompletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gameCompleted = append(f.gameCompleted, event)
	return nil
}

func (f *fakeEventPublisher) PublishDailyChallengeCompleted(_ context.Context, event domain.DailyChallengeCompletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dailyCompleted = append(f.dailyCompleted, event)
	return nil
}

func (f *fakeEventPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, event)
	return nil
}

func (f *fakeEventPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetRequested = append(f.resetRequested, event)
	return nil
}
