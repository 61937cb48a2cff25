package services

import (
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/temple-trust/temple_finance_app/internal/core/ports/services"
	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

// ServicesContainer wires every service over a shared repository provider and
// change notifier, so handler registration takes a single dependency.
type ServicesContainer struct {
	Donation       portssvc.DonationSvcFacade
	Expense        portssvc.ExpenseSvcFacade
	BudgetRequest  portssvc.BudgetRequestSvcFacade
	Budget         portssvc.BudgetSvcFacade
	Lifecycle      portssvc.LifecycleSvcFacade
	Classifier     portssvc.ExceptionClassifierSvc
	Reconciliation portssvc.ReconciliationSvcFacade
	Reporting      portssvc.ReportingSvcFacade
	Timeline       portssvc.TimelineSvcFacade
}

// NewServicesContainer builds the full service graph.
func NewServicesContainer(repos portsrepo.RepositoryProvider, publisher events.Publisher) *ServicesContainer {
	lifecycle := NewLifecycleService(repos.DonationRepo, repos.ExpenseRepo, repos.BudgetRequestRepo, publisher)
	classifier := NewExceptionClassifier(lifecycle)

	return &ServicesContainer{
		Donation:       NewDonationService(repos.DonationRepo, publisher),
		Expense:        NewExpenseService(repos.ExpenseRepo, publisher),
		BudgetRequest:  NewBudgetRequestService(repos.BudgetRequestRepo, publisher),
		Budget:         NewBudgetService(repos.BudgetRepo),
		Lifecycle:      lifecycle,
		Classifier:     classifier,
		Reconciliation: NewReconciliationService(repos.DonationRepo, repos.ExpenseRepo, lifecycle, classifier),
		Reporting:      NewReportingService(repos.DonationRepo, repos.ExpenseRepo, repos.BudgetRepo),
		Timeline:       NewTimelineService(repos.TimelineRepo),
	}
}
