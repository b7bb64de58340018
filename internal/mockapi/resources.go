package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetory/console/internal/models"
)

func (s *Server) handleListDistributors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.Distributor, 0, len(s.distributors))
	for _, d := range s.distributors {
		out = append(out, d)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	d, found := s.distributors[id]
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Distributor not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreateDistributor(w http.ResponseWriter, r *http.Request) {
	type createRequest struct {
		Name    string `json:"name" validate:"required,min=2,max=100"`
		Email   string `json:"email" validate:"required,email"`
		Phone   string `json:"phone" validate:"required"`
		Address string `json:"address" validate:"required"`
	}

	data, err := bindAndValidate[createRequest](w, r)
	if err != nil {
		return
	}

	d := models.Distributor{
		ID:        uuid.New(),
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.distributors[d.ID] = d
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	type updateRequest struct {
		Name    string `json:"name" validate:"required,min=2,max=100"`
		Email   string `json:"email" validate:"required,email"`
		Phone   string `json:"phone" validate:"required"`
		Address string `json:"address" validate:"required"`
	}

	data, err := bindAndValidate[updateRequest](w, r)
	if err != nil {
		return
	}

	s.mu.Lock()
	d, found := s.distributors[id]
	if found {
		d.Name = data.Name
		d.Email = data.Email
		d.Phone = data.Phone
		d.Address = data.Address
		s.distributors[id] = d
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Distributor not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDistributor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	_, found := s.distributors[id]
	delete(s.distributors, id)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Distributor not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	out := make([]models.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		if d.DistributorID == distributorID {
			out = append(out, d)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	type createRequest struct {
		Name          string `json:"name" validate:"required,min=2,max=100"`
		Phone         string `json:"phone" validate:"required"`
		LicenseNumber string `json:"licenseNumber" validate:"required"`
		Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	}

	data, err := bindAndValidate[createRequest](w, r)
	if err != nil {
		return
	}
	if data.Status == "" {
		data.Status = models.DriverStatusActive
	}

	d := models.Driver{
		ID:            uuid.New(),
		DistributorID: s.currentDistributorID(r.Context()),
		Name:          data.Name,
		Phone:         data.Phone,
		LicenseNumber: data.LicenseNumber,
		Status:        data.Status,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.drivers[d.ID] = d
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	type updateRequest struct {
		Name          string `json:"name" validate:"required,min=2,max=100"`
		Phone         string `json:"phone" validate:"required"`
		LicenseNumber string `json:"licenseNumber" validate:"required"`
		Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	}

	data, err := bindAndValidate[updateRequest](w, r)
	if err != nil {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	d, found := s.drivers[id]
	if found && d.DistributorID == distributorID {
		d.Name = data.Name
		d.Phone = data.Phone
		d.LicenseNumber = data.LicenseNumber
		if data.Status != "" {
			d.Status = data.Status
		}
		s.drivers[id] = d
	}
	s.mu.Unlock()

	if !found || d.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Driver not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	d, found := s.drivers[id]
	if found && d.DistributorID == distributorID {
		delete(s.drivers, id)
	}
	s.mu.Unlock()

	if !found || d.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Driver not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.DistributorID == distributorID {
			out = append(out, p)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	type createRequest struct {
		Name        string          `json:"name" validate:"required,min=2,max=100"`
		Category    string          `json:"category" validate:"required"`
		Description string          `json:"description" validate:"max=500"`
		Price       decimal.Decimal `json:"price" validate:"required"`
		Stock       int             `json:"stock" validate:"gte=0"`
	}

	data, err := bindAndValidate[createRequest](w, r)
	if err != nil {
		return
	}

	p := models.Product{
		ID:            uuid.New(),
		DistributorID: s.currentDistributorID(r.Context()),
		Name:          data.Name,
		Category:      data.Category,
		Description:   data.Description,
		Price:         data.Price,
		Stock:         data.Stock,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.products[p.ID] = p
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	type updateRequest struct {
		Name        string          `json:"name" validate:"required,min=2,max=100"`
		Category    string          `json:"category" validate:"required"`
		Description string          `json:"description" validate:"max=500"`
		Price       decimal.Decimal `json:"price" validate:"required"`
		Stock       int             `json:"stock" validate:"gte=0"`
	}

	data, err := bindAndValidate[updateRequest](w, r)
	if err != nil {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	p, found := s.products[id]
	if found && p.DistributorID == distributorID {
		p.Name = data.Name
		p.Category = data.Category
		p.Description = data.Description
		p.Price = data.Price
		p.Stock = data.Stock
		s.products[id] = p
	}
	s.mu.Unlock()

	if !found || p.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	p, found := s.products[id]
	if found && p.DistributorID == distributorID {
		delete(s.products, id)
	}
	s.mu.Unlock()

	if !found || p.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.DistributorID == distributorID {
			out = append(out, o)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	o, found := s.orders[id]
	s.mu.Unlock()

	if !found || o.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	type statusRequest struct {
		Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED DELIVERED"`
	}

	data, err := bindAndValidate[statusRequest](w, r)
	if err != nil {
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	o, found := s.orders[id]
	if found && o.DistributorID == distributorID {
		o.Status = data.Status
		o.ModifiedAt = time.Now().UTC()
		s.orders[id] = o
	}
	s.mu.Unlock()

	if !found || o.DistributorID != distributorID {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	out := make([]models.ConnectionRequest, 0, len(s.requests))
	for _, cr := range s.requests {
		if cr.DistributorID == id {
			out = append(out, cr)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// responseEnvelope mirrors the application level wrapper the real respond
// endpoint nests inside a 2xx
type responseEnvelope struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Data    *models.ConnectionRequest `json:"data,omitempty"`
}

func (s *Server) handleRespondRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != models.RequestStatusAccepted && status != models.RequestStatusRejected {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "Validation failed",
			Errors:  []string{"status must be one of ACCEPTED REJECTED"},
		})
		return
	}
	distributorID := s.currentDistributorID(r.Context())

	s.mu.Lock()
	cr, found := s.requests[id]
	switch {
	case !found || cr.DistributorID != distributorID:
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Connection request not found")
		return
	case cr.Status != models.RequestStatusPending:
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, responseEnvelope{Success: false, Message: "request already answered"})
		return
	}
	cr.Status = status
	s.requests[id] = cr
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, responseEnvelope{Success: true, Data: &cr})
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	type createRequest struct {
		DistributorID uuid.UUID `json:"distributorId" validate:"required"`
		RetailerName  string    `json:"retailerName" validate:"required,min=2,max=100"`
		RetailerPhone string    `json:"retailerPhone" validate:"required"`
	}

	data, err := bindAndValidate[createRequest](w, r)
	if err != nil {
		return
	}

	s.mu.Lock()
	_, found := s.distributors[data.DistributorID]
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Distributor not found")
		return
	}

	cr := models.ConnectionRequest{
		ID:            uuid.New(),
		DistributorID: data.DistributorID,
		RetailerName:  data.RetailerName,
		RetailerPhone: data.RetailerPhone,
		Status:        models.RequestStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.requests[cr.ID] = cr
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, cr)
}
