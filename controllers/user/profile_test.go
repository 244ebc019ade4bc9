package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"elearn/database"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProfileApp(t *testing.T) (*fiber.App, *gorm.DB, models.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Ada", Email: "ada@example.com", Password: "hash", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		c.Locals("role", user.Role)
		return c.Next()
	})
	app.Get("/user/profile", GetProfile)
	app.Put("/user/profile", UpdateProfile)
	return app, db, user
}

func TestGetProfile(t *testing.T) {
	app, _, user := setupProfileApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/user/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, user.Name, body.Data["name"])
	assert.Equal(t, user.Email, body.Data["email"])
	// the password hash never leaves the server
	assert.NotContains(t, body.Data, "password")
}

func TestUpdateProfile(t *testing.T) {
	app, db, user := setupProfileApp(t)

	payload := `{"name":"Ada L.","bio":"Teaches calculus.","avatar_url":"https://cdn.example.com/ada.png"}`
	req := httptest.NewRequest("PUT", "/user/profile", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "Teaches calculus.", got.Bio)
	assert.Equal(t, "https://cdn.example.com/ada.png", got.AvatarURL)
}

func TestUpdateProfilePartial(t *testing.T) {
	app, db, user := setupProfileApp(t)

	req := httptest.NewRequest("PUT", "/user/profile", strings.NewReader(`{"bio":"Just a bio."}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "Just a bio.", got.Bio)
	assert.Equal(t, user.Name, got.Name) // untouched fields stay put
}

func TestUpdateProfileRejectsShortName(t *testing.T) {
	app, db, user := setupProfileApp(t)

	req := httptest.NewRequest("PUT", "/user/profile", strings.NewReader(`{"name":"A"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, user.Name, got.Name)
}
