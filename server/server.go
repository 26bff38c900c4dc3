// Package server exposes the layout engine, suggestion client and map
// persistence over HTTP for the browser front end.
package server

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"metromap/layout"
	"metromap/suggest"
)

// Server wires the HTTP API to its collaborators. The layout engine is
// stateless and safe to share across request goroutines; database
// access goes through gorm's pooled connection.
type Server struct {
	db        *gorm.DB
	engine    *layout.Engine
	suggester *suggest.Client
	jwtSecret []byte
}

// New creates a server. db may be nil, in which case the auth and
// saved-map endpoints report the feature as unavailable while the pure
// layout and suggestion endpoints keep working.
func New(db *gorm.DB, engine *layout.Engine, suggester *suggest.Client) *Server {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "metromap-dev-secret"
	}
	if engine == nil {
		engine = layout.NewEngine(layout.DefaultConfig())
	}
	if suggester == nil {
		suggester = suggest.NewClient()
	}
	return &Server{
		db:        db,
		engine:    engine,
		suggester: suggester,
		jwtSecret: []byte(secret),
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/static/index.html")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/login", s.login)

		api.POST("/layout", s.layoutHandler)
		api.POST("/suggest/theme", s.suggestTheme)
		api.POST("/suggest/layout", s.suggestLayout)

		maps := api.Group("/maps")
		maps.Use(s.authMiddleware())
		{
			maps.GET("", s.listMaps)
			maps.POST("", s.createMap)
			maps.GET("/:id", s.getMap)
			maps.PUT("/:id", s.updateMap)
			maps.DELETE("/:id", s.deleteMap)
		}
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
