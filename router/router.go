package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/shop-dataset/controllers"
	"github.com/yeremiapane/shop-dataset/middlewares"
)

type Options struct {
	Datasets *controllers.DatasetController
	// Limiter guards dataset generation. Nil disables limiting.
	Limiter    *middlewares.RateLimiter
	CORSOrigin string
	Log        logrus.FieldLogger
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	if opts.Log != nil {
		r.Use(middlewares.LoggerMiddleware(opts.Log))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	dc := opts.Datasets
	r.GET("/catalog", dc.GetCatalog)

	datasets := r.Group("/datasets")
	{
		create := []gin.HandlerFunc{dc.CreateDataset}
		if opts.Limiter != nil {
			create = append([]gin.HandlerFunc{opts.Limiter.RateLimit()}, create...)
		}
		datasets.POST("", create...)
		datasets.GET("/:name", dc.GetDataset)
		datasets.GET("/:name/validation", dc.ValidateDataset)
	}

	return r
}
