package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/service"
)

type AuthService interface {
	Signup(ctx context.Context, input service.SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthController struct {
	svc AuthService
}

func NewAuthController(svc AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type AddressInput struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type SignupInput struct {
	FirstName   string       `json:"firstName" binding:"required"`
	LastName    string       `json:"lastName" binding:"required"`
	Email       string       `json:"email" binding:"required,email"`
	Password    string       `json:"password" binding:"required,min=6"`
	PhoneNumber string       `json:"phoneNumber"`
	Address     AddressInput `json:"address" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body SignupInput true "Signup payload"
// @Success 201 {object} map[string]interface{}
// @Router /signup [post]
func (h *AuthController) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	userID, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
		Address: models.Address{
			Street:     input.Address.Street,
			City:       input.Address.City,
			State:      input.Address.State,
			PostalCode: input.Address.PostalCode,
			Country:    input.Address.Country,
		},
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "userId": userID})
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// Me returns the authenticated user attached by the auth middleware.
func (h *AuthController) Me(c *gin.Context) {
	user, exist := c.Get("user")
	if !exist {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}
	c.JSON(http.StatusOK, user)
}
