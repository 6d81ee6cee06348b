package handlers

import (
	"net/http"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/shared/utils"
)

// handleKPIs serves the delivery KPIs page
func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filter := parseFilter(r, kpiWindowMonths)
	report, err := s.kpiService.DeliveryKPIs(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		utils.RespondWithReport(w, http.StatusOK, report)
		return
	}
	s.renderPage(w, r, "kpis", "Delivery KPIs", report)
}

// handleDisruptions serves the disruption analytics page
func (s *Server) handleDisruptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filter := parseFilter(r, disruptionWindowMonths)
	report, err := s.disruptionService.Disruptions(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		utils.RespondWithReport(w, http.StatusOK, report)
		return
	}
	s.renderPage(w, r, "disruptions", "Disruption Analytics", report)
}

// handleHealth serves the financial health page
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filter := parseFilter(r, healthWindowMonths)
	report, err := s.financeService.FinancialHealth(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		utils.RespondWithReport(w, http.StatusOK, report)
		return
	}
	s.renderPage(w, r, "health", "Financial Health", report)
}

// handleCompanies serves the company directory page, the company detail
// payload, and the update_company edit action
func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// A detail parameter switches the response to JSON
		filter := parseFilter(r, companiesWindowMonths)
		if filter.CompanyID != nil {
			detail, err := s.directoryService.CompanyDetail(r.Context(), *filter.CompanyID, filter)
			if err != nil {
				respondServiceError(w, r, err)
				return
			}
			utils.RespondWithReport(w, http.StatusOK, detail)
			return
		}

		report, err := s.directoryService.Directory(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if wantsJSON(r) {
			utils.RespondWithReport(w, http.StatusOK, report)
			return
		}
		s.renderPage(w, r, "companies", "Company Directory", report)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		if r.FormValue("action") != "update_company" {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown action")
			return
		}
		err := s.directoryService.UpdateCompany(r.Context(), models.UpdateCompanyRequest{
			CompanyID:   formUint(r, "company_id"),
			CompanyName: r.FormValue("company_name"),
			Tier:        formInt(r, "tier"),
		})
		finishEdit(w, r, "company", err)

	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleDistributors serves the distributor performance page
func (s *Server) handleDistributors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filter := parseFilter(r, distributorWindowMonths)
	report, err := s.distributorService.Performance(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		utils.RespondWithReport(w, http.StatusOK, report)
		return
	}
	s.renderPage(w, r, "distributors", "Distributor Performance", report)
}

// handleInventory serves the inventory movements page and the
// update_adjustment edit action
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := parseFilter(r, inventoryWindowMonths)
		report, err := s.inventoryService.Inventory(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if wantsJSON(r) {
			utils.RespondWithReport(w, http.StatusOK, report)
			return
		}
		s.renderPage(w, r, "inventory", "Inventory Movements", report)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		if r.FormValue("action") != "update_adjustment" {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown action")
			return
		}
		err := s.inventoryService.UpdateAdjustment(r.Context(), models.UpdateAdjustmentRequest{
			TransactionID:  formUint(r, "transaction_id"),
			QuantityChange: formInt(r, "quantity_change"),
			Reason:         r.FormValue("reason"),
		})
		finishEdit(w, r, "adjustment", err)

	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleTransactions serves the paginated transactions page and the
// update_shipping / update_receiving edit actions
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := parseFilter(r, transactionWindowMonths)
		report, err := s.transactionService.Transactions(r.Context(), filter,
			pageParam(r, "ship_page"),
			pageParam(r, "recv_page"),
			pageParam(r, "adj_page"),
		)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if wantsJSON(r) {
			utils.RespondWithReport(w, http.StatusOK, report)
			return
		}
		s.renderPage(w, r, "transactions", "Transactions", report)

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		switch r.FormValue("action") {
		case "update_shipping":
			err := s.transactionService.UpdateShipping(r.Context(), models.UpdateShippingRequest{
				ShipmentID:   formUint(r, "shipment_id"),
				Quantity:     formInt(r, "quantity"),
				PromisedDate: r.FormValue("promised_date"),
				ActualDate:   r.FormValue("actual_date"),
			})
			finishEdit(w, r, "shipping", err)
		case "update_receiving":
			err := s.transactionService.UpdateReceiving(r.Context(), models.UpdateReceivingRequest{
				ReceivingID:  formUint(r, "receiving_id"),
				Quantity:     formInt(r, "quantity"),
				ReceivedDate: r.FormValue("received_date"),
			})
			finishEdit(w, r, "receiving", err)
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown action")
		}

	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
