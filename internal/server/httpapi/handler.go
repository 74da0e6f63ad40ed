package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bankd/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		PhoneNumber string `json:"phoneNumber"`
		DateOfBirth string `json:"dateOfBirth"`
		SSN         string `json:"ssn"`
		Address     string `json:"address"`
		City        string `json:"city"`
		State       string `json:"state"`
		ZipCode     string `json:"zipCode"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Missing required fields")
		return
	}

	user, token, err := s.users.Signup(r.Context(), services.SignupParams{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
	})
	if err != nil {
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	newCarrier(w, r).SetToken(token, s.cookieMaxAge)

	s.logger.Info(r.Context(), "user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserDTO(user),
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	newCarrier(w, r).SetToken(token, s.cookieMaxAge)

	s.logger.Info(r.Context(), "user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(user),
		"token": token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	carrier := newCarrier(w, r)

	result := s.users.Logout(r.Context(), carrier.Token())

	// The cookie is cleared no matter what happened to the session row.
	carrier.ClearToken()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": result.Success,
		"revoked": result.Revoked,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountType string `json:"accountType"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	user := UserFromContext(r.Context())

	account, err := s.ledger.CreateAccount(r.Context(), user.ID, req.AccountType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "account created", "user_id", user.ID, "account_id", account.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"account": toAccountDTO(account)})
}

func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	accounts, err := s.ledger.GetAccounts(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]accountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, toAccountDTO(a))
	}

	writeJSON(w, http.StatusOK, map[string]any{"accounts": dtos})
}

func (s *Server) handleFundAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID     string `json:"accountId"`
		Amount        int64  `json:"amount"`
		FundingSource struct {
			Type          string `json:"type"`
			CardNumber    string `json:"cardNumber"`
			AccountNumber string `json:"accountNumber"`
			RoutingNumber string `json:"routingNumber"`
		} `json:"fundingSource"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Missing account id")
		return
	}

	user := UserFromContext(r.Context())

	result, err := s.ledger.FundAccount(r.Context(), user.ID, req.AccountID, req.Amount, services.FundingSource{
		Type:          req.FundingSource.Type,
		CardNumber:    req.FundingSource.CardNumber,
		AccountNumber: req.FundingSource.AccountNumber,
		RoutingNumber: req.FundingSource.RoutingNumber,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "account funded",
		"user_id", user.ID, "account_id", req.AccountID, "transaction_id", result.TransactionID)
	writeJSON(w, http.StatusOK, map[string]any{
		"transactionId": result.TransactionID,
		"newBalance":    result.NewBalance,
	})
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	user := UserFromContext(r.Context())

	txns, err := s.ledger.GetTransactions(r.Context(), user.ID, accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]transactionDTO, 0, len(txns))
	for _, t := range txns {
		dtos = append(dtos, toTransactionDTO(t))
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": dtos})
}
