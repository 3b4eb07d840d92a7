package seed

import (
	"context"

	"github.com/AndreyZherdetskiy/balance-hub/configs"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const demoPassword = "password123"

var demoUsers = []struct {
	Name  string
	Email string
}{
	{"Test User 1", "user1@test.com"},
	{"Test User 2", "user2@test.com"},
	{"Test User 3", "user3@test.com"},
}

// Run creates the admin and demo users with empty accounts on first start.
// A rerun is a no-op: existing emails are left untouched.
func Run(ctx context.Context, db *gorm.DB, cfg *configs.Config, logger *zap.Logger) error {
	users := store.NewUserStore(db)
	accounts := store.NewAccountStore(db)
	userService := service.NewUserService(users)

	existing, err := users.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil {
		return err
	}
	if existing == nil {
		admin, err := userService.Create(ctx, service.CreateUserInput{
			Email:    cfg.Seed.AdminEmail,
			FullName: "Administrator",
			Password: cfg.Seed.AdminPassword,
			IsAdmin:  true,
		})
		if err != nil {
			return err
		}
		logger.Info("seeded admin user", zap.Uint64("id", admin.ID))
	}

	for _, u := range demoUsers {
		existing, err := users.GetByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		user, err := userService.Create(ctx, service.CreateUserInput{
			Email:    u.Email,
			FullName: u.Name,
			Password: demoPassword,
		})
		if err != nil {
			return err
		}
		if _, err := accounts.CreateForUser(ctx, user.ID); err != nil {
			return err
		}
	}

	logger.Info("seed complete")
	return nil
}
