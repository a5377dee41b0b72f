// ABOUTME: Gin HTTP server implementing the storefront REST API for local development
// ABOUTME: Errors are answered as {"detail": "..."} so clients can show them verbatim
package backend

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/flagshop/api"
	"github.com/harperreed/flagshop/models"
)

const (
	emailContextKey = "email"

	// ServiceName is reported by the health endpoint.
	ServiceName = "Fireworks Advertising API"

	QuoteCreatedMessage       = "Quote request submitted successfully. We'll contact you within 24 hours."
	CustomizationSavedMessage = "Customization saved successfully"

	invalidCredentialsDetail = "Invalid email or password"
	invalidTokenDetail       = "Invalid token"
	fileTypeNotAllowedDetail = "File type not allowed. Please upload JPG, PNG, PDF, or AI files."
)

const maxUploadBytes int64 = 10 << 20

type Server struct {
	store     *Store
	tokens    *Tokens
	uploadDir string
	products  []models.Product
	logger    *zap.Logger
}

func NewServer(store *Store, tokens *Tokens, uploadDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:     store,
		tokens:    tokens,
		uploadDir: uploadDir,
		products:  SeedProducts(),
		logger:    logger,
	}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxUploadBytes
	router.Use(customRecovery(s.logger))
	router.Use(loggingMiddleware(s.logger))
	router.Use(corsMiddleware())

	router.Static("/uploads", s.uploadDir)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", s.handleHealth)
		apiGroup.POST("/auth/register", s.handleRegister)
		apiGroup.POST("/auth/login", s.handleLogin)
		apiGroup.GET("/products", s.handleListProducts)
		apiGroup.GET("/products/:id", s.handleGetProduct)
		apiGroup.POST("/upload", s.handleUpload)
		apiGroup.POST("/quotes", s.handleCreateQuote)

		authed := apiGroup.Group("")
		authed.Use(s.requireAuth())
		{
			authed.GET("/auth/me", s.handleMe)
			authed.GET("/quotes", s.handleListQuotes)
			authed.POST("/customizations", s.handleSaveCustomization)
			authed.GET("/customizations", s.handleListCustomizations)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		detail(c, http.StatusNotFound, "Not Found")
	})
	return router
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			detail(c, http.StatusForbidden, "Not authenticated")
			return
		}

		email, err := s.tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			detail(c, http.StatusUnauthorized, invalidTokenDetail)
			return
		}
		c.Set(emailContextKey, email)
		c.Next()
	}
}

func currentEmail(c *gin.Context) string {
	return c.GetString(emailContextKey)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	Phone        string `json:"phone"`
	AccountType  string `json:"account_type"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.AccountType == "" {
		req.AccountType = models.AccountRegular
	}
	if req.AccountType != models.AccountRegular && req.AccountType != models.AccountWholesale {
		detail(c, http.StatusUnprocessableEntity, "account_type must be regular or wholesale")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}

	u := &user{
		Viewer: models.Viewer{
			Email:        req.Email,
			BusinessName: req.BusinessName,
			AccountType:  req.AccountType,
			// Wholesale accounts wait for manual approval.
			WholesaleApproved: req.AccountType != models.AccountWholesale,
		},
		PasswordHash: hash,
		Phone:        req.Phone,
	}
	if err := s.store.createUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			detail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}

	s.respondWithToken(c, u)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	u, err := s.store.userByEmail(c.Request.Context(), req.Email)
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil || !checkPassword(u.PasswordHash, req.Password) {
		detail(c, http.StatusUnauthorized, invalidCredentialsDetail)
		return
	}

	s.respondWithToken(c, u)
}

func (s *Server) respondWithToken(c *gin.Context, u *user) {
	token, err := s.tokens.Issue(u.Email)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u.Viewer,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	u, err := s.store.userByEmail(c.Request.Context(), currentEmail(c))
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u.Viewer)
}

func (s *Server) handleListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": s.products})
}

func (s *Server) handleGetProduct(c *gin.Context) {
	id := c.Param("id")
	for _, p := range s.products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	detail(c, http.StatusNotFound, "Product not found")
}

func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "file is required")
		return
	}
	if err := api.ValidateLogoFileName(header.Filename); err != nil {
		detail(c, http.StatusBadRequest, fileTypeNotAllowedDetail)
		return
	}
	if header.Size > maxUploadBytes {
		detail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %d MB)", maxUploadBytes>>20))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		s.logger.Error("Failed to create upload dir", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	dst := filepath.Join(s.uploadDir, name)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		s.logger.Error("Failed to save upload", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}

	info, err := os.Stat(dst)
	size := header.Size
	if err == nil {
		size = info.Size()
	}
	s.logger.Info("Logo uploaded", zap.String("file", name), zap.Int64("size", size))

	c.JSON(http.StatusOK, models.UploadResult{
		Filename:         name,
		OriginalFilename: header.Filename,
		FileURL:          "/uploads/" + name,
		FileSize:         size,
	})
}

type quoteRequest struct {
	UserEmail         string                     `json:"user_email" binding:"required"`
	BusinessName      string                     `json:"business_name" binding:"required"`
	ProductName       string                     `json:"product_name" binding:"required"`
	CustomizationData *models.CustomizationDraft `json:"customization_data"`
	Quantity          int                        `json:"quantity" binding:"required,min=1"`
	Message           string                     `json:"message"`
}

func (s *Server) handleCreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	q := &models.Quote{
		UserEmail:         req.UserEmail,
		BusinessName:      req.BusinessName,
		ProductName:       req.ProductName,
		CustomizationData: req.CustomizationData,
		Quantity:          req.Quantity,
		Message:           req.Message,
	}
	if err := s.store.CreateQuote(c.Request.Context(), q); err != nil {
		s.logger.Error("Failed to create quote", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info("Quote requested", zap.String("quote_id", q.ID), zap.String("product", q.ProductName))
	c.JSON(http.StatusOK, models.QuoteReceipt{ID: q.ID, Message: QuoteCreatedMessage})
}

func (s *Server) handleListQuotes(c *gin.Context) {
	quotes, err := s.store.ListQuotes(c.Request.Context(), currentEmail(c))
	if err != nil {
		s.logger.Error("Failed to list quotes", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (s *Server) handleSaveCustomization(c *gin.Context) {
	var req models.SavedCustomization
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.ProductID == "" {
		detail(c, http.StatusUnprocessableEntity, "product_id is required")
		return
	}
	req.UserEmail = currentEmail(c)

	if err := s.store.CreateCustomization(c.Request.Context(), &req); err != nil {
		s.logger.Error("Failed to save customization", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, models.QuoteReceipt{ID: req.ID, Message: CustomizationSavedMessage})
}

func (s *Server) handleListCustomizations(c *gin.Context) {
	list, err := s.store.ListCustomizations(c.Request.Context(), currentEmail(c))
	if err != nil {
		s.logger.Error("Failed to list customizations", zap.Error(err))
		detail(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customizations": list})
}
