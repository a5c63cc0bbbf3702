package routes

import (
	"nagarseva-be/controllers"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint intake and dashboard routes
func ComplaintRoutes(r *gin.Engine, ctrl *controllers.ComplaintController) {
	complaints := r.Group("/api/complaints")
	{
		complaints.POST("", ctrl.Create)
		complaints.GET("", ctrl.List)
		complaints.GET("/stats", ctrl.Stats)
		complaints.GET("/:id", ctrl.Get)
		complaints.PUT("/:id", ctrl.Update)
		complaints.DELETE("/:id", ctrl.Delete)
	}
}
