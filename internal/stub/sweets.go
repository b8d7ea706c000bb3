package stub

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// quantityReq is the body of purchase and restock calls. A pointer
// distinguishes "not sent" from an explicit zero.
type quantityReq struct {
	Quantity *int `json:"quantity"`
}

// list returns the full catalog.
func (s *Server) list(c echo.Context) error {
	s.mu.Lock()
	sweets := s.listSweetsLocked()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, sweets)
}

// search filters the catalog: name is a case-insensitive substring
// match, category an exact match, the price bounds inclusive.
func (s *Server) search(c echo.Context) error {
	name := strings.ToLower(c.QueryParam("name"))
	category := c.QueryParam("category")
	minPrice, hasMin, err := queryFloat(c, "minPrice")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid minPrice"})
	}
	maxPrice, hasMax, err := queryFloat(c, "maxPrice")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid maxPrice"})
	}

	s.mu.Lock()
	all := s.listSweetsLocked()
	s.mu.Unlock()

	out := make([]model.Sweet, 0, len(all))
	for _, sweet := range all {
		if name != "" && !strings.Contains(strings.ToLower(sweet.Name), name) {
			continue
		}
		if category != "" && sweet.Category != category {
			continue
		}
		if hasMin && sweet.Price < minPrice {
			continue
		}
		if hasMax && sweet.Price > maxPrice {
			continue
		}
		out = append(out, sweet)
	}
	return c.JSON(http.StatusOK, out)
}

// create adds a sweet and answers 201 with the stored record.
func (s *Server) create(c echo.Context) error {
	var in model.SweetInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	s.mu.Lock()
	sweet := s.insertSweetLocked(model.Sweet{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		Image:       in.Image,
	})
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, sweet)
}

// update replaces a sweet's fields, keeping its identifier.
func (s *Server) update(c echo.Context) error {
	id := c.Param("id")
	var in model.SweetInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "sweet not found"})
	}
	sweet.Name = in.Name
	sweet.Category = in.Category
	sweet.Price = in.Price
	sweet.Quantity = in.Quantity
	sweet.Description = in.Description
	sweet.Image = in.Image
	s.sweets[id] = sweet
	return c.JSON(http.StatusOK, sweet)
}

// remove deletes a sweet, answering 204 on success.
func (s *Server) remove(c echo.Context) error {
	s.mu.Lock()
	ok := s.removeSweetLocked(c.Param("id"))
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "sweet not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// purchase decrements stock. The whole check-and-decrement runs under
// the server lock, which is what serializes two racing purchases: stock
// never goes negative, the loser gets a 409 with the reason.
func (s *Server) purchase(c echo.Context) error {
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "quantity must be positive"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	sweet, ok := s.sweets[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "sweet not found"})
	}
	if qty > sweet.Quantity {
		return c.JSON(http.StatusConflict, echo.Map{
			"message": fmt.Sprintf("insufficient stock for %s: requested %d, available %d", sweet.Name, qty, sweet.Quantity),
		})
	}
	sweet.Quantity -= qty
	s.sweets[id] = sweet
	return c.JSON(http.StatusOK, sweet)
}

// restock increments stock by a strictly positive delta.
func (s *Server) restock(c echo.Context) error {
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "quantity must be positive"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	sweet, ok := s.sweets[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "sweet not found"})
	}
	sweet.Quantity += *req.Quantity
	s.sweets[id] = sweet
	return c.JSON(http.StatusOK, sweet)
}

// queryFloat parses an optional float query parameter.
func queryFloat(c echo.Context, key string) (float64, bool, error) {
	raw := c.QueryParam(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
