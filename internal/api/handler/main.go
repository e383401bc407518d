package handler

import (
	"net/http"

	"fortex/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "⛏️")
	})

	routesAPI := r.Group("/api")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPI.Use(cors)
		routesAPI.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.

		a := groupAuth{cfg.Container}
		routesAPI.POST("/auth/verify", a.Verify)
		routesAPI.POST("/logout", a.Logout)

		u := groupAccount{cfg.Container}
		routesAPI.GET("/me", u.Me)
		routesAPI.GET("/users/:identityKey", u.GetByIdentityKey)
		routesAPI.POST("/membership/:tier", u.Membership)

		m := groupMining{cfg.Container}
		routesAPI.POST("/mining/claim", m.Claim)
		routesAPI.POST("/balance/add", m.AddBalance)

		g := groupGame{cfg.Container}
		routesAPI.GET("/games", g.GetGames)
		routesAPI.GET("/game/:game", g.Show)
		routesAPI.POST("/game/:game/play", g.Play)
	}

	return r, nil
}
