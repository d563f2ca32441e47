package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
)

// CreateUserRequest is the JSON body for POST /api/v1/users.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"` // Initial password; the user must change it on first login
	IsAdmin  bool    `json:"is_admin"`
	PlayerID *string `json:"player_id,omitempty"`
}

// CreateUser handles POST /api/v1/users (admin): provisions a login account
// with a temporary password and the forced-reset flag set.
func CreateUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Username == "" || len(req.Password) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and a password of at least 8 characters are required"})
		}

		var playerID *uuid.UUID
		if req.PlayerID != nil {
			id, err := uuid.Parse(*req.PlayerID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player_id"})
			}
			var player models.Player
			if err := db.First(&player, "id = ?", id).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
			}
			playerID = &id
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
		}

		user := models.User{
			Username:            req.Username,
			PasswordHash:        string(hash),
			IsAdmin:             req.IsAdmin,
			NeedsPasswordChange: true,
			PlayerID:            playerID,
		}
		if err := db.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username already taken"})
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}
