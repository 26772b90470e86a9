// Package user содержит бизнес-логику работы с пользователями и сессиями:
// посев администратора, регистрация, вход, учёт расчётов и экспортов,
// производные сводки.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/jwt"
	"github.com/investwisepro/admin-console/internal/lib/password"
	"github.com/investwisepro/admin-console/internal/models"
)

// Учётные данные администратора, засеваемые при первом запуске.
const (
	seedAdminEmail    = "admin@investwisepro.com"
	seedAdminPassword = "admin123"
	seedAdminID       = "admin_001"
)

// Ошибки доменных правил. Ошибки хранилища сюда не попадают.
var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository описывает контракт для работы с пользователями и сессиями.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	GetAdminCredentials(ctx context.Context) (*models.AdminCredentials, error)
	SaveAdminCredentials(ctx context.Context, creds models.AdminCredentials) error

	ListSessions(ctx context.Context) ([]models.Session, error)
	SaveSessions(ctx context.Context, sessions []models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	GetCurrentSessionID(ctx context.Context) (string, error)
	SetCurrentSessionID(ctx context.Context, id string) error
	ClearCurrentSessionID(ctx context.Context) error
}

// EventSink принимает типизированные события консоли.
// Обработка best-effort: сбой получателя не влияет на регистрацию.
type EventSink interface {
	HandleEvent(ctx context.Context, ev events.Event)
}

// Service реализует операции над пользователями и сессиями.
type Service struct {
	repo     Repository
	jwtMaker jwt.Maker
	sink     EventSink // может быть nil
	clock    clock.Clock
	log      *slog.Logger
}

// New создает новый Service. sink может быть nil.
func New(repo Repository, jwtMaker jwt.Maker, sink EventSink, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		sink:     sink,
		clock:    clk,
		log:      log,
	}
}

// InitializeAdmin идемпотентно гарантирует ровно одного пользователя
// с ролью admin. Если администратор уже есть — no-op.
func (s *Service) InitializeAdmin(ctx context.Context) error {
	const op = "services.user.InitializeAdmin"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return nil
		}
	}

	now := s.clock.Now()
	admin := models.User{
		ID:               seedAdminID,
		Email:            seedAdminEmail,
		Name:             "System Administrator",
		RegistrationDate: now,
		LastLogin:        now,
		IsActive:         true,
		Role:             models.RoleAdmin,
		Preferences:      &models.UserPreferences{Notifications: true},
	}
	if err := s.repo.SaveUsers(ctx, append(users, admin)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.Hash(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	creds := models.AdminCredentials{Email: seedAdminEmail, PasswordHash: hash}
	if err := s.repo.SaveAdminCredentials(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("seeded admin user", slog.String("email", seedAdminEmail))
	return nil
}

// Register создаёт нового пользователя и открывает для него сессию.
// Email сравнивается точным совпадением; дубликат — ErrUserExists.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	const op = "services.user.Register"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	for _, u := range users {
		if u.Email == req.Email {
			return nil, "", ErrUserExists
		}
	}

	now := s.clock.Now()
	newUser := models.User{
		ID:               "user_" + uuid.NewString(),
		Email:            req.Email,
		Name:             req.Name,
		RegistrationDate: now,
		LastLogin:        now,
		IsActive:         true,
		Role:             models.RoleUser,
		Country:          req.Country,
		Preferences: &models.UserPreferences{
			DefaultCountry: req.Country,
			Notifications:  true,
		},
	}
	if err := s.repo.SaveUsers(ctx, append(users, newUser)); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.openSession(ctx, newUser)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if s.sink != nil {
		s.sink.HandleEvent(ctx, events.UserRegistered{Email: newUser.Email, Name: newUser.Name})
	}
	return &newUser, token, nil
}

// Login выполняет вход по одной электронной почте, без пароля —
// упрощение, унаследованное от исходной системы.
// Неизвестный email — ErrUserNotFound.
func (s *Service) Login(ctx context.Context, email string) (*models.User, string, error) {
	const op = "services.user.Login"

	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if u == nil {
		return nil, "", ErrUserNotFound
	}

	u.LastLogin = s.clock.Now()
	u.IsActive = true
	if err := s.repo.UpdateUser(ctx, *u); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.openSession(ctx, *u)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return u, token, nil
}

// LoginAdmin выполняет вход администратора по email и паролю.
// Пароль сверяется с bcrypt-хэшем из слота admin_credentials.
func (s *Service) LoginAdmin(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.user.LoginAdmin"

	creds, err := s.repo.GetAdminCredentials(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if creds == nil || creds.Email != email {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.Compare(creds.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if u == nil || u.Role != models.RoleAdmin {
		return nil, "", ErrInvalidCredentials
	}

	u.LastLogin = s.clock.Now()
	u.IsActive = true
	if err := s.repo.UpdateUser(ctx, *u); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.openSession(ctx, *u)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return u, token, nil
}

// CurrentUser возвращает пользователя по идентификатору сессии.
// Пустой sessionID разрешается через сохранённый указатель текущей
// сессии. Отсутствующая или завершённая сессия — nil без ошибки.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	const op = "services.user.CurrentUser"

	if sessionID == "" {
		var err error
		sessionID, err = s.repo.GetCurrentSessionID(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sessionID == "" {
			return nil, nil
		}
	}

	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess == nil {
		return nil, nil
	}
	return s.findByID(ctx, sess.UserID)
}

// Logout завершает сессию и сбрасывает указатель текущей сессии.
// Выход без активной сессии — no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	const op = "services.user.Logout"

	if sessionID == "" {
		var err error
		sessionID, err = s.repo.GetCurrentSessionID(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if sessionID == "" {
			return nil
		}
	}
	if err := s.repo.EndSession(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ClearCurrentSessionID(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecordCalculation увеличивает счётчик расчётов текущего пользователя.
// Если никто не вошёл — no-op.
func (s *Service) RecordCalculation(ctx context.Context, sessionID string) error {
	return s.bumpCounter(ctx, sessionID, func(u *models.User) {
		u.TotalCalculations++
	})
}

// RecordExport увеличивает счётчик экспортов текущего пользователя.
// Если никто не вошёл — no-op.
func (s *Service) RecordExport(ctx context.Context, sessionID string) error {
	return s.bumpCounter(ctx, sessionID, func(u *models.User) {
		u.TotalExports++
	})
}

// ListUsers возвращает всех пользователей.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// DeleteUser удаляет пользователя по ID.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

// ActiveUsers возвращает пользователей, входивших за последние 30 дней.
func (s *Service) ActiveUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.clock.Now().Add(-30 * 24 * time.Hour)
	var active []models.User
	for _, u := range users {
		if u.LastLogin.After(cutoff) {
			active = append(active, u)
		}
	}
	return active, nil
}

// NewUsersThisWeek возвращает пользователей, зарегистрированных
// за последние 7 дней.
func (s *Service) NewUsersThisWeek(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.clock.Now().Add(-7 * 24 * time.Hour)
	var fresh []models.User
	for _, u := range users {
		if u.RegistrationDate.After(cutoff) {
			fresh = append(fresh, u)
		}
	}
	return fresh, nil
}

// Stats возвращает производную сводку по пользователям.
// Пересчитывается при каждом вызове.
func (s *Service) Stats(ctx context.Context) (*models.UserStats, error) {
	const op = "services.user.Stats"

	all, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active, err := s.ActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fresh, err := s.NewUsersThisWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	growth := "0.0"
	if len(all) > 0 {
		growth = fmt.Sprintf("%.1f", float64(len(fresh))/float64(len(all))*100)
	}
	return &models.UserStats{
		TotalUsers:       len(all),
		ActiveUsers:      len(active),
		NewUsersThisWeek: len(fresh),
		GrowthRate:       growth,
	}, nil
}

func (s *Service) openSession(ctx context.Context, u models.User) (string, error) {
	now := s.clock.Now()
	sess := models.Session{
		UserID:       u.ID,
		SessionID:    "session_" + uuid.NewString(),
		LoginTime:    now,
		LastActivity: now,
		IsActive:     true,
	}

	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return "", err
	}
	if err := s.repo.SaveSessions(ctx, append(sessions, sess)); err != nil {
		return "", err
	}
	if err := s.repo.SetCurrentSessionID(ctx, sess.SessionID); err != nil {
		return "", err
	}

	return s.jwtMaker.GenerateToken(u.Email, u.Role, sess.SessionID)
}

func (s *Service) bumpCounter(ctx context.Context, sessionID string, bump func(*models.User)) error {
	u, err := s.CurrentUser(ctx, sessionID)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	bump(u)
	return s.repo.UpdateUser(ctx, *u)
}

func (s *Service) findByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Service) findByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}
