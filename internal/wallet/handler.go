package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Address          *string  `json:"address"`
	ExpectedQuantity *float64 `json:"expected_quantity"`
	Currency         *string  `json:"currency"`
}

type updateRequest struct {
	ExpectedQuantity json.RawMessage `json:"expected_quantity"`
}

// Create registers a wallet from {address, expected_quantity, currency}.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Address == nil || req.ExpectedQuantity == nil || req.Currency == nil {
		return fiber.NewError(http.StatusUnprocessableEntity, "address, expected_quantity and currency are required")
	}

	wallet, err := h.service.Create(c.UserContext(), CreateInput{
		Address:          *req.Address,
		ExpectedQuantity: *req.ExpectedQuantity,
		Currency:         *req.Currency,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(wallet)
}

// List returns every tracked wallet.
func (h *Handler) List(c *fiber.Ctx) error {
	wallets, err := h.service.List(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(wallets)
}

// Get returns a single wallet.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	wallet, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(wallet)
}

// Update changes the expected quantity. Missing or non-numeric quantities
// leave the wallet unchanged; only syntactically broken JSON is rejected.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}

	var input UpdateInput
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		var req updateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return fiber.NewError(http.StatusBadRequest, err.Error())
			}
		}
		if q, ok := parseQuantity(req.ExpectedQuantity); ok {
			input.ExpectedQuantity = &q
		}
	}

	wallet, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(wallet)
}

// Delete removes a wallet and echoes its pre-delete state.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := walletID(c)
	if err != nil {
		return err
	}
	wallet, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(wallet)
}

// parseQuantity accepts a JSON number or a numeric string.
func parseQuantity(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func walletID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusUnprocessableEntity, "wallet id must be an integer")
	}
	return id, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Wallet not found")
	case errors.Is(err, ErrAddressExists):
		return fiber.NewError(http.StatusConflict, "Wallet already exists")
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
