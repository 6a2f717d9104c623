package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/congo-pay/wallet-reconciler/internal/reconcile"
    "github.com/congo-pay/wallet-reconciler/internal/wallet"
)

// RegisterWalletRoutes wires wallet CRUD and the comparison endpoint. The
// static /compare path is registered ahead of /:id.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler, rh *reconcile.Handler) {
    group := r.Group("/wallets")
    group.Post("/", h.Create)
    group.Get("/", h.List)
    group.Get("/compare", rh.Compare)
    group.Get("/:id", h.Get)
    group.Put("/:id", h.Update)
    group.Delete("/:id", h.Delete)
}
