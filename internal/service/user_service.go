package service

import (
	"context"
	"errors"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/util"
	"school_exam_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned server-side to every account created by
// an admin; the hash is stored, never the plaintext.
const DefaultPassword = "password"

// UserInput is the allow-listed field set a directory mutation may
// touch. Role is deliberately absent: it is fixed at create time and
// changed by no update path.
type UserInput struct {
	Name     string
	Username string
	Email    *string
	Phone    *string
	// Password is honored on update only when non-empty; create
	// always assigns the default password.
	Password string
	ClassID  *uint
}

// UserService is the user directory: admin-managed teacher and
// student accounts plus self-service profile updates.
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListByRole(role model.UserRole) ([]model.User, error) {
	return s.UserRepo.FindByRole(role)
}

func (s *UserService) ListStudentsByClass(classID uint) ([]model.User, error) {
	return s.UserRepo.FindStudentsByClass(classID)
}

// CreateWithRole creates a directory account with an explicit role and
// the default password. Uniqueness failures come back as field errors,
// never as silent overwrites.
func (s *UserService) CreateWithRole(input UserInput, role model.UserRole) (*model.User, util.FieldErrors, error) {
	fields, err := s.uniquenessErrors(input, 0)
	if err != nil {
		return nil, nil, err
	}
	if !fields.Empty() {
		return nil, fields, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hash),
		Role:     role,
		ClassID:  input.ClassID,
	}

	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateFields(input, 0), nil
		}
		return nil, nil, err
	}
	return user, nil, nil
}

// Update persists the allow-listed fields of an existing account. The
// password hash is replaced only when a new password was provided; the
// role is never touched.
func (s *UserService) Update(id uint, role model.UserRole, input UserInput) (util.FieldErrors, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, util.ErrUserNotFound
	}

	fields, err := s.uniquenessErrors(input, id)
	if err != nil {
		return nil, err
	}
	if !fields.Empty() {
		return fields, nil
	}

	updates := map[string]interface{}{
		"name":     input.Name,
		"username": input.Username,
		"email":    input.Email,
		"phone":    input.Phone,
	}
	if input.ClassID != nil {
		updates["class_id"] = input.ClassID
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if err := s.UserRepo.UpdateFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.duplicateFields(input, id), nil
		}
		return nil, err
	}
	return nil, nil
}

// duplicateFields maps a write that lost on the unique index back to
// the field-error shape of the pre-write check. The write re-probes
// the columns; when the winning row is already gone again, the
// username takes the blame as the only always-present unique field.
func (s *UserService) duplicateFields(input UserInput, excludeID uint) util.FieldErrors {
	fields, err := s.uniquenessErrors(input, excludeID)
	if err != nil || fields.Empty() {
		fields = util.FieldErrors{}
		fields.Add("username", "The username has already been taken.")
	}
	return fields
}

// Delete removes the account and then releases its avatar object.
// The avatar delete is best-effort: a storage failure is logged, the
// record deletion stands.
func (s *UserService) Delete(ctx context.Context, id uint, role model.UserRole) error {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	} else if err != nil {
		return err
	}
	if user.Role != role {
		return util.ErrUserNotFound
	}

	if err := s.UserRepo.Delete(id); err != nil {
		return err
	}

	if user.Avatar != "" {
		if err := s.Storage.Delete(ctx, user.Avatar); err != nil {
			logger.Log.Warn("avatar cleanup failed",
				zap.Uint("user_id", id),
				zap.String("avatar", user.Avatar),
				zap.Error(err),
			)
		}
	}

	return nil
}

// ProfileInput is the self-service subset of UserInput.
type ProfileInput struct {
	Name     string
	Email    *string
	Phone    *string
	Password string
}

func (s *UserService) UpdateProfile(id uint, input ProfileInput) (util.FieldErrors, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	fields, err := s.profileUniquenessErrors(input, id)
	if err != nil {
		return nil, err
	}
	if !fields.Empty() {
		return fields, nil
	}

	updates := map[string]interface{}{
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if err := s.UserRepo.UpdateFields(id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if fields, perr := s.profileUniquenessErrors(input, id); perr == nil && !fields.Empty() {
				return fields, nil
			}
			fields := util.FieldErrors{}
			fields.Add("email", "The email has already been taken.")
			return fields, nil
		}
		return nil, err
	}
	return nil, nil
}

func (s *UserService) profileUniquenessErrors(input ProfileInput, id uint) (util.FieldErrors, error) {
	fields := util.FieldErrors{}
	if input.Email != nil {
		taken, err := s.UserRepo.EmailTaken(*input.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("email", "The email has already been taken.")
		}
	}
	if input.Phone != nil {
		taken, err := s.UserRepo.PhoneTaken(*input.Phone, id)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("phone", "The phone has already been taken.")
		}
	}
	return fields, nil
}

// SetAvatar stores the new avatar reference and releases the previous
// object best-effort.
func (s *UserService) SetAvatar(ctx context.Context, id uint, filename string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.UserRepo.UpdateFields(id, map[string]interface{}{"avatar": filename}); err != nil {
		return err
	}

	if user.Avatar != "" && user.Avatar != filename {
		if err := s.Storage.Delete(ctx, user.Avatar); err != nil {
			logger.Log.Warn("stale avatar cleanup failed",
				zap.Uint("user_id", id),
				zap.String("avatar", user.Avatar),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *UserService) uniquenessErrors(input UserInput, excludeID uint) (util.FieldErrors, error) {
	fields := util.FieldErrors{}

	taken, err := s.UserRepo.UsernameTaken(input.Username, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		fields.Add("username", "The username has already been taken.")
	}

	if input.Email != nil {
		taken, err := s.UserRepo.EmailTaken(*input.Email, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("email", "The email has already been taken.")
		}
	}

	if input.Phone != nil {
		taken, err := s.UserRepo.PhoneTaken(*input.Phone, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			fields.Add("phone", "The phone has already been taken.")
		}
	}

	return fields, nil
}
