package main

import (
	"context"
	"log"
	"net"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/config"
	"github.com/mercatto/storefront/internal/events"
	"github.com/mercatto/storefront/internal/httpx"
	"github.com/mercatto/storefront/internal/order"
	"github.com/mercatto/storefront/internal/payment"
	"github.com/mercatto/storefront/internal/product"
	"github.com/mercatto/storefront/internal/registry"
	"github.com/mercatto/storefront/internal/store"
	"github.com/mercatto/storefront/internal/user"
)

type deps struct {
	cfg      config.Config
	users    user.Repository
	products product.Repository
	carts    cart.Repository
	orders   order.Repository
	pub      events.Publisher
	checkout payment.Checkout
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	api := r.Group("/api")

	u := api.Group("/user")
	u.POST("/register", registerHandler(d.users, d.cfg))
	u.POST("/login", loginHandler(d.users, d.cfg))
	u.POST("/admin", adminLoginHandler(d.cfg))

	p := api.Group("/product")
	p.GET("/list", listProductsHandler(d.products))
	p.POST("/single", singleProductHandler(d.products))
	pAdmin := p.Group("", httpx.Auth(d.cfg.JWTSecret), httpx.AdminOnly())
	pAdmin.POST("/add", addProductHandler(d.products))
	pAdmin.POST("/remove", removeProductHandler(d.products))

	ct := api.Group("/cart", httpx.Auth(d.cfg.JWTSecret))
	ct.POST("/add", addToCartHandler(d.carts))
	ct.POST("/update", updateCartHandler(d.carts))
	ct.POST("/get", getCartHandler(d.carts))

	o := api.Group("/order", httpx.Auth(d.cfg.JWTSecret))
	o.POST("/place", placeOrderHandler(d.orders, d.carts, d.products, d.pub, d.cfg))
	o.POST("/stripe", placeStripeOrderHandler(d.orders, d.carts, d.products, d.checkout, d.cfg))
	o.POST("/verify", verifyOrderHandler(d.orders, d.carts))
	o.POST("/userorders", userOrdersHandler(d.orders))
	oAdmin := o.Group("", httpx.AdminOnly())
	oAdmin.POST("/list", listOrdersHandler(d.orders))
	oAdmin.POST("/status", updateStatusHandler(d.orders, d.pub))

	return r
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := store.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatalf("[store] migrate: %v", err)
	}
	pool, err := store.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[store] open: %v", err)
	}
	defer pool.Close()

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafka(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("[events] kafka: %v", err)
		}
		defer kafka.Close()
		pub = kafka
	}

	var checkout payment.Checkout
	if cfg.StripeKey != "" {
		checkout = payment.NewStripe(cfg.StripeKey, cfg.Currency, cfg.FrontendURL)
	}

	if cfg.ConsulAddr != "" {
		host, portStr, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			log.Fatalf("[registry] bad API_ADDR %q: %v", cfg.Addr, err)
		}
		if host == "" {
			host = "localhost"
		}
		port, _ := strconv.Atoi(portStr)
		if err := registry.Register(cfg.ConsulAddr, cfg.ServiceName, cfg.ServiceName+"-"+portStr, host, port); err != nil {
			log.Fatalf("[registry] register: %v", err)
		}
		log.Printf("[registry] registered %s with consul at %s", cfg.ServiceName, cfg.ConsulAddr)
	}

	r := newRouter(deps{
		cfg:      cfg,
		users:    user.NewPGRepo(pool),
		products: product.NewPGRepo(pool),
		carts:    cart.NewPGRepo(pool),
		orders:   order.NewPGRepo(pool),
		pub:      pub,
		checkout: checkout,
	})

	log.Printf("storefront api listening on %s", cfg.Addr)
	log.Fatal(r.Run(cfg.Addr))
}
