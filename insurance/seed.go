/*
seed.go - Demo data loaded into every store at startup and on reset

PURPOSE:
  Populates the stores with a small, realistic data set so the back-office
  UI has something to show: 6 customers, each with a policy, 6 claims and
  12 pension payments.

  Every call returns fresh values (maps and slices included), so stores
  seeded from it never share memory with each other or with tests.

SEE ALSO:
  - api/handlers.go: Reset handler
  - cmd/server/main.go: Startup seeding
*/
package insurance

import "github.com/shopspring/decimal"

// Seed bundles one copy of the demo data for all four stores.
type Seed struct {
	Policies  []Policy
	Claims    []Claim
	Customers []Customer
	Payments  []Payment
}

// NewSeed returns a fresh copy of the demo data.
func NewSeed() Seed {
	return Seed{
		Policies:  SeedPolicies(),
		Claims:    SeedClaims(),
		Customers: SeedCustomers(),
		Payments:  SeedPayments(),
	}
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func SeedPolicies() []Policy {
	return []Policy{
		{
			ID: 1, PolicyNumber: "POL-1001", CustomerID: 1, Customer: "John Smith",
			Type: "Auto Insurance", Premium: money("1200"),
			StartDate: "2023-01-15", EndDate: "2024-01-14", Status: PolicyActive,
			CoverageDetails: map[string]any{
				"vehicleModel": "Toyota Camry", "vehicleYear": 2020,
				"coverageType": "Comprehensive", "deductible": 500,
			},
		},
		{
			ID: 2, PolicyNumber: "POL-1002", CustomerID: 2, Customer: "Sarah Johnson",
			Type: "Home Insurance", Premium: money("950"),
			StartDate: "2023-02-20", EndDate: "2024-02-19", Status: PolicyActive,
			CoverageDetails: map[string]any{
				"propertyType": "Single Family Home", "propertyValue": 350000,
				"coverageType": "Standard", "deductible": 1000,
			},
		},
		{
			ID: 3, PolicyNumber: "POL-1003", CustomerID: 3, Customer: "Michael Brown",
			Type: "Life Insurance", Premium: money("2500"),
			StartDate: "2023-03-10", EndDate: "2024-03-09", Status: PolicyActive,
			CoverageDetails: map[string]any{
				"beneficiary": "Lisa Brown", "coverageAmount": 500000, "policyType": "Term Life",
			},
		},
		{
			ID: 4, PolicyNumber: "POL-1004", CustomerID: 4, Customer: "Emily Davis",
			Type: "Health Insurance", Premium: money("3200"),
			StartDate: "2023-01-05", EndDate: "2024-01-04", Status: PolicyActive,
			CoverageDetails: map[string]any{
				"planType": "Family", "deductible": 2000, "coPayment": 25,
			},
		},
		{
			ID: 5, PolicyNumber: "POL-1005", CustomerID: 5, Customer: "David Wilson",
			Type: "Auto Insurance", Premium: money("1450"),
			StartDate: "2023-04-12", EndDate: "2024-04-11", Status: PolicyPending,
			CoverageDetails: map[string]any{
				"vehicleModel": "Honda Accord", "vehicleYear": 2021,
				"coverageType": "Comprehensive", "deductible": 750,
			},
		},
		{
			ID: 6, PolicyNumber: "POL-1006", CustomerID: 6, Customer: "Jennifer Martinez",
			Type: "Home Insurance", Premium: money("1100"),
			StartDate: "2022-05-18", EndDate: "2023-05-17", Status: PolicyExpired,
			CoverageDetails: map[string]any{
				"propertyType": "Condominium", "propertyValue": 280000,
				"coverageType": "Standard", "deductible": 1500,
			},
		},
	}
}

func SeedClaims() []Claim {
	return []Claim{
		{
			ID: 1, ClaimID: "CLM-1001", PolicyNumber: "POL-1001", CustomerID: 1, Customer: "John Smith",
			Amount: money("2500"), IncidentDate: "2023-03-15", FiledDate: "2023-03-17", Status: ClaimApproved,
			Description: "Vehicle damage due to hail storm",
			Documents:   []string{"accident_report.pdf", "damage_photos.jpg"},
		},
		{
			ID: 2, ClaimID: "CLM-1002", PolicyNumber: "POL-1002", CustomerID: 2, Customer: "Sarah Johnson",
			Amount: money("1800"), IncidentDate: "2023-03-20", FiledDate: "2023-03-22", Status: ClaimProcessing,
			Description: "Water damage from burst pipe",
			Documents:   []string{"plumber_report.pdf", "damage_photos.jpg"},
		},
		{
			ID: 3, ClaimID: "CLM-1003", PolicyNumber: "POL-1004", CustomerID: 4, Customer: "Emily Davis",
			Amount: money("3200"), IncidentDate: "2023-03-25", FiledDate: "2023-03-26", Status: ClaimPending,
			Description: "Emergency room visit",
			Documents:   []string{"medical_report.pdf", "hospital_bill.pdf"},
		},
		{
			ID: 4, ClaimID: "CLM-1004", PolicyNumber: "POL-1003", CustomerID: 3, Customer: "Michael Brown",
			Amount: money("4500"), IncidentDate: "2023-03-10", FiledDate: "2023-03-12", Status: ClaimRejected,
			Description: "Claim for policy that was not active",
			Documents:   []string{"claim_form.pdf"},
		},
		{
			ID: 5, ClaimID: "CLM-1005", PolicyNumber: "POL-1005", CustomerID: 5, Customer: "David Wilson",
			Amount: money("1200"), IncidentDate: "2023-04-02", FiledDate: "2023-04-03", Status: ClaimPending,
			Description: "Minor fender bender",
			Documents:   []string{"police_report.pdf", "damage_photos.jpg"},
		},
		{
			ID: 6, ClaimID: "CLM-1006", PolicyNumber: "POL-1004", CustomerID: 4, Customer: "Emily Davis",
			Amount: money("950"), IncidentDate: "2023-04-05", FiledDate: "2023-04-06", Status: ClaimProcessing,
			Description: "Prescription medication",
			Documents:   []string{"prescription.pdf", "receipt.pdf"},
		},
	}
}

func SeedCustomers() []Customer {
	return []Customer{
		{
			ID: 1, Name: "John Smith", Email: "john.smith@example.com", Phone: "(555) 123-4567",
			CustomerSince: "2020-05-12",
			Address:       Address{Street: "123 Main St", City: "Anytown", State: "CA", ZipCode: "12345"},
			Policies:      []string{"POL-1001"}, Claims: []string{"CLM-1001"}, Avatar: DefaultAvatar,
		},
		{
			ID: 2, Name: "Sarah Johnson", Email: "sarah.j@example.com", Phone: "(555) 234-5678",
			CustomerSince: "2021-02-18",
			Address:       Address{Street: "456 Oak Ave", City: "Somewhere", State: "NY", ZipCode: "67890"},
			Policies:      []string{"POL-1002"}, Claims: []string{"CLM-1002"}, Avatar: DefaultAvatar,
		},
		{
			ID: 3, Name: "Michael Brown", Email: "m.brown@example.com", Phone: "(555) 345-6789",
			CustomerSince: "2019-11-05",
			Address:       Address{Street: "789 Pine Rd", City: "Elsewhere", State: "TX", ZipCode: "54321"},
			Policies:      []string{"POL-1003"}, Claims: []string{"CLM-1004"}, Avatar: DefaultAvatar,
		},
		{
			ID: 4, Name: "Emily Davis", Email: "emily.davis@example.com", Phone: "(555) 456-7890",
			CustomerSince: "2022-01-30",
			Address:       Address{Street: "321 Maple Dr", City: "Nowhere", State: "FL", ZipCode: "98765"},
			Policies:      []string{"POL-1004"}, Claims: []string{"CLM-1003", "CLM-1006"}, Avatar: DefaultAvatar,
		},
		{
			ID: 5, Name: "David Wilson", Email: "d.wilson@example.com", Phone: "(555) 567-8901",
			CustomerSince: "2020-08-22",
			Address:       Address{Street: "654 Birch Ln", City: "Someplace", State: "IL", ZipCode: "13579"},
			Policies:      []string{"POL-1005"}, Claims: []string{"CLM-1005"}, Avatar: DefaultAvatar,
		},
		{
			ID: 6, Name: "Jennifer Martinez", Email: "j.martinez@example.com", Phone: "(555) 678-9012",
			CustomerSince: "2021-04-15",
			Address:       Address{Street: "987 Cedar Ct", City: "Anyplace", State: "WA", ZipCode: "24680"},
			Policies:      []string{"POL-1006"}, Claims: []string{}, Avatar: DefaultAvatar,
		},
	}
}

func SeedPayments() []Payment {
	p := func(id, customerID int, customer, amount, date string, method PaymentMethod, status PaymentStatus, desc, ref string) Payment {
		return Payment{
			ID: id, PaymentID: BusinessID(PaymentPrefix, id), CustomerID: customerID, Customer: customer,
			Amount: money(amount), Currency: "EUR", Date: date, Method: method, Status: status,
			Description: desc, ReferenceNumber: ref,
		}
	}
	return []Payment{
		p(1, 1, "John Smith", "750.50", "2023-04-15", MethodBankTransfer, PaymentCompleted, DefaultPaymentDescription, "REF-123456"),
		p(2, 2, "Sarah Johnson", "925.75", "2023-04-15", MethodDirectDebit, PaymentCompleted, DefaultPaymentDescription, "REF-234567"),
		p(3, 3, "Michael Brown", "1025.25", "2023-04-16", MethodCheck, PaymentPending, DefaultPaymentDescription, "REF-345678"),
		p(4, 4, "Emily Davis", "875.00", "2023-04-16", MethodBankTransfer, PaymentCompleted, DefaultPaymentDescription, "REF-456789"),
		p(5, 5, "David Wilson", "1125.50", "2023-04-17", MethodCreditCard, PaymentFailed, "Monthly pension payment - card declined", "REF-567890"),
		p(6, 6, "Jennifer Martinez", "950.25", "2023-04-17", MethodDirectDebit, PaymentPending, DefaultPaymentDescription, "REF-678901"),
		p(7, 7, "Robert Taylor", "1050.75", "2023-04-18", MethodBankTransfer, PaymentCompleted, DefaultPaymentDescription, "REF-789012"),
		p(8, 8, "Jessica Anderson", "825.50", "2023-04-18", MethodCheck, PaymentCancelled, "Monthly pension payment - cancelled by customer", "REF-890123"),
		p(9, 9, "Thomas White", "1100.00", "2023-04-19", MethodDirectDebit, PaymentCompleted, DefaultPaymentDescription, "REF-901234"),
		p(10, 10, "Amanda Harris", "975.25", "2023-04-19", MethodBankTransfer, PaymentPending, DefaultPaymentDescription, "REF-012345"),
		p(11, 1, "John Smith", "750.50", "2023-05-15", MethodBankTransfer, PaymentCompleted, DefaultPaymentDescription, "REF-123457"),
		p(12, 2, "Sarah Johnson", "925.75", "2023-05-15", MethodDirectDebit, PaymentCompleted, DefaultPaymentDescription, "REF-234568"),
	}
}
