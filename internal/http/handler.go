package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

// SummaryExporter renders a user summary report into a downloadable document.
type SummaryExporter interface {
	Generate(report model.UserSummaryReport) ([]byte, error)
}

type Handler struct {
	auth     *service.AuthService
	roles    *service.RoleService
	bins     *service.BinService
	deposits *service.DepositService
	trucks   *service.TruckService
	routes   *service.RouteService
	payments *service.PaymentService
	reports  *service.ReportService
	excel    SummaryExporter
	pdf      SummaryExporter
	log      zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	roles *service.RoleService,
	bins *service.BinService,
	deposits *service.DepositService,
	trucks *service.TruckService,
	routes *service.RouteService,
	payments *service.PaymentService,
	reports *service.ReportService,
	excel SummaryExporter,
	pdf SummaryExporter,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		roles:    roles,
		bins:     bins,
		deposits: deposits,
		trucks:   trucks,
		routes:   routes,
		payments: payments,
		reports:  reports,
		excel:    excel,
		pdf:      pdf,
		log:      log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.GET("/me", authMiddleware, h.me)
	authGroup.PUT("/role/:id", authMiddleware, h.assignRole)

	roleGroup := api.Group("/role", authMiddleware)
	roleGroup.GET("", h.listRoles)
	roleGroup.GET("/:id", h.getRole)
	roleGroup.POST("", h.createRole)
	roleGroup.PUT("/:id", h.updateRole)

	wasteGroup := api.Group("/waste")
	wasteGroup.GET("", h.listBins)
	wasteGroup.GET("/:id", h.getBin)
	wasteGroup.GET("/mine/:binType", authMiddleware, h.listOwnBins)
	wasteGroup.POST("", authMiddleware, h.requirePermission("ADMIN_BIN_MNG_CREATE"), h.createBin)
	wasteGroup.PUT("/:id", authMiddleware, h.requirePermission("ADMIN_BIN_MNG_EDIT"), h.updateBin)
	wasteGroup.DELETE("/:id", authMiddleware, h.requirePermission("ADMIN_BIN_MNG_DELETE"), h.deleteBin)
	wasteGroup.PUT("/:id/reset", authMiddleware, h.resetBinLevel)

	garbageGroup := api.Group("/garbage")
	garbageGroup.GET("/level", h.binFillLevels)
	garbageGroup.GET("/stats/categories", h.statsCategories)
	garbageGroup.GET("/stats/status", h.statsStatus)
	garbageGroup.GET("/stats/bin-types", h.statsBinTypes)
	garbageGroup.GET("/stats/revenue", h.statsRevenue)
	garbageGroup.GET("/stats/daily", h.statsDaily)
	garbageGroup.GET("/stats/monthly", h.statsMonthly)
	garbageGroup.GET("/stats/request-daily", h.statsRequestDaily)

	garbageAuth := garbageGroup.Group("", authMiddleware)
	garbageAuth.GET("", h.listDeposits)
	garbageAuth.POST("", h.createDeposit)
	garbageAuth.GET("/today", h.todayDeposits)
	garbageAuth.GET("/summary", h.userSummary)
	garbageAuth.GET("/summary/export", h.exportSummaryExcel)
	garbageAuth.GET("/summary/export/pdf", h.exportSummaryPDF)
	garbageAuth.GET("/trend", h.trend)
	garbageAuth.GET("/:id", h.getDeposit)
	garbageAuth.PUT("/:id", h.updateDeposit)
	garbageAuth.DELETE("/:id", h.deleteDeposit)

	truckGroup := api.Group("/truck", authMiddleware)
	truckGroup.POST("", h.createTruck)
	truckGroup.GET("", h.listTrucks)
	truckGroup.GET("/mine", h.truckByDriver)
	truckGroup.GET("/:id", h.getTruck)
	truckGroup.PUT("/:id", h.updateTruck)
	truckGroup.DELETE("/:id", h.deleteTruck)
	truckGroup.PUT("/:id/status", h.setTruckStatus)
	truckGroup.PUT("/:id/collect/:garbageId", h.collectDeposit)

	collectionGroup := api.Group("/collection", authMiddleware)
	collectionGroup.POST("", h.createRoute)
	collectionGroup.GET("", h.listRoutes)
	collectionGroup.GET("/:id", h.getRoute)
	collectionGroup.PUT("/:id", h.updateRoute)
	collectionGroup.DELETE("/:id", h.deleteRoute)

	requestGroup := api.Group("/request")
	requestGroup.GET("", authMiddleware, h.listPickupRequests)
	requestGroup.GET("/mine", authMiddleware, h.listOwnPickupRequests)

	payhereGroup := api.Group("/payhere")
	payhereGroup.POST("/notify", h.payhereNotify)
	payhereGroup.POST("/notify-bin", h.payhereNotifyBin)
	payhereGroup.GET("/payments", authMiddleware, h.listPayments)
	payhereGroup.POST("/schedule", authMiddleware, h.scheduleCollection)
	payhereGroup.GET("/schedule", authMiddleware, h.listScheduledCollections)

	api.POST("/checkout/hash", h.checkoutHash)
}

// requirePermission loads the caller's role and checks one permission flag.
func (h *Handler) requirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		_, role, err := h.auth.CurrentUser(c.Request.Context(), principal)
		if err != nil {
			h.handleError(c, err)
			c.Abort()
			return
		}
		if !role.Allows(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Permission denied"})
			return
		}
		c.Next()
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
	case errors.Is(err, service.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": "Permission denied"})
	case errors.Is(err, service.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user identifier"})
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidDateMessage(err)})
	case errors.Is(err, service.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"message": "endDate must be on or after startDate"})
	case errors.Is(err, service.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bin capacity exceeded. Please use another bin."})
	case errors.Is(err, service.ErrDuplicateOrder):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duplicate order"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
	case errors.Is(err, service.ErrStoreValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database unavailable, please try again later"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}
}

func invalidDateMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "startDate"):
		return "Invalid startDate"
	case strings.Contains(msg, "endDate"):
		return "Invalid endDate"
	default:
		return "Invalid date"
	}
}
