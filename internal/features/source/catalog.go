package source

// Catalog returns the deployment-defined data sources. Field keys are
// dot-paths into the stored row documents; computed fields carry the
// expression evaluated per row at execution time.
func Catalog() []DataSourceDefinition {
	return []DataSourceDefinition{
		{
			Key:         "participants",
			Label:       "Participants",
			Description: "Registered event participants with liability and check-in data",
			Fields: []FieldDefinition{
				{Key: "firstName", Label: "First Name", Category: "Identity"},
				{Key: "lastName", Label: "Last Name", Category: "Identity"},
				{Key: "fullName", Label: "Full Name", Category: "Identity", Expr: `row.firstName + " " + row.lastName`},
				{Key: "email", Label: "Email", Category: "Contact"},
				{Key: "phone", Label: "Phone", Category: "Contact"},
				{Key: "birthDate", Label: "Birth Date", Category: "Identity"},
				{Key: "participantType", Label: "Participant Type", Category: "Registration"},
				{Key: "diocese", Label: "Diocese", Category: "Registration"},
				{Key: "parish", Label: "Parish", Category: "Registration"},
				{Key: "registeredAt", Label: "Registered At", Category: "Registration"},
				{Key: "liabilityForm.allergies", Label: "Allergies", Category: "Medical"},
				{Key: "liabilityForm.medications", Label: "Medications", Category: "Medical"},
				{Key: "liabilityForm.dietaryRestrictions", Label: "Dietary Restrictions", Category: "Medical"},
				{Key: "liabilityForm.emergencyContact.name", Label: "Emergency Contact", Category: "Medical"},
				{Key: "liabilityForm.emergencyContact.phone", Label: "Emergency Phone", Category: "Medical"},
				{Key: "checkIn.checkedIn", Label: "Checked In", Category: "Check-In"},
				{Key: "checkIn.checkedInAt", Label: "Checked In At", Category: "Check-In"},
			},
			Filters: []FilterDefinition{
				{Key: "participantType", Label: "Participant Type", Kind: FilterSelect, Field: "participantType", Options: []Option{
					{Value: "all", Label: "All Types"},
					{Value: "youth", Label: "Youth"},
					{Value: "chaperone", Label: "Chaperone"},
					{Value: "clergy", Label: "Clergy"},
					{Value: "volunteer", Label: "Volunteer"},
				}},
				{Key: "diocese", Label: "Diocese", Kind: FilterMultiSelect, Field: "diocese"},
				{Key: "lastName", Label: "Last Name", Kind: FilterText, Field: "lastName", MatchMode: MatchContains},
				{Key: "hasMedicalNeeds", Label: "Has Medical Needs", Kind: FilterBoolean, Field: "liabilityForm.allergies"},
				{Key: "checkedIn", Label: "Checked In", Kind: FilterBoolean, Field: "checkIn.checkedIn"},
				{Key: "registeredBetween", Label: "Registered Between", Kind: FilterDateRange, Field: "registeredAt"},
			},
			Groupings: []Grouping{
				{Key: GroupNone, Label: "No Grouping"},
				{Key: "participantType", Label: "By Participant Type", Field: "participantType"},
				{Key: "diocese", Label: "By Diocese", Field: "diocese"},
				{Key: "parish", Label: "By Parish", Field: "parish"},
			},
		},
		{
			Key:         "incidents",
			Label:       "Medical Incidents",
			Description: "Medical incident reports filed during the event",
			Fields: []FieldDefinition{
				{Key: "incidentType", Label: "Incident Type", Category: "Incident"},
				{Key: "severity", Label: "Severity", Category: "Incident"},
				{Key: "status", Label: "Status", Category: "Incident"},
				{Key: "description", Label: "Description", Category: "Incident"},
				{Key: "occurredAt", Label: "Occurred At", Category: "Incident"},
				{Key: "resolvedAt", Label: "Resolved At", Category: "Incident"},
				{Key: "participant.firstName", Label: "Participant First Name", Category: "Participant"},
				{Key: "participant.lastName", Label: "Participant Last Name", Category: "Participant"},
				{Key: "participant.diocese", Label: "Participant Diocese", Category: "Participant"},
				{Key: "reportedBy", Label: "Reported By", Category: "Treatment"},
				{Key: "treatment.notes", Label: "Treatment Notes", Category: "Treatment"},
				{Key: "treatment.medicationGiven", Label: "Medication Given", Category: "Treatment"},
			},
			Filters: []FilterDefinition{
				{Key: "severity", Label: "Severity", Kind: FilterSelect, Field: "severity", Options: []Option{
					{Value: "all", Label: "All Severities"},
					{Value: "minor", Label: "Minor"},
					{Value: "moderate", Label: "Moderate"},
					{Value: "severe", Label: "Severe"},
				}},
				{Key: "status", Label: "Status", Kind: FilterSelect, Field: "status", Options: []Option{
					{Value: "all", Label: "All Statuses"},
					{Value: "open", Label: "Open"},
					{Value: "monitoring", Label: "Monitoring"},
					{Value: "resolved", Label: "Resolved"},
				}},
				{Key: "incidentType", Label: "Incident Type", Kind: FilterMultiSelect, Field: "incidentType"},
				{Key: "description", Label: "Description", Kind: FilterText, Field: "description", MatchMode: MatchContains},
				{Key: "medicationGiven", Label: "Medication Given", Kind: FilterBoolean, Field: "treatment.medicationGiven"},
				{Key: "occurredBetween", Label: "Occurred Between", Kind: FilterDateRange, Field: "occurredAt"},
			},
			Groupings: []Grouping{
				{Key: GroupNone, Label: "No Grouping"},
				{Key: "severity", Label: "By Severity", Field: "severity"},
				{Key: "status", Label: "By Status", Field: "status"},
				{Key: "incidentType", Label: "By Incident Type", Field: "incidentType"},
			},
		},
		{
			Key:         "financial",
			Label:       "Financial",
			Description: "Invoices and payments imported from the payment processor",
			Fields: []FieldDefinition{
				{Key: "invoiceNumber", Label: "Invoice Number", Category: "Invoice"},
				{Key: "payer.name", Label: "Payer", Category: "Payer"},
				{Key: "payer.email", Label: "Payer Email", Category: "Payer"},
				{Key: "payer.diocese", Label: "Payer Diocese", Category: "Payer"},
				{Key: "amountDue", Label: "Amount Due", Category: "Amounts"},
				{Key: "amountPaid", Label: "Amount Paid", Category: "Amounts"},
				{Key: "balance", Label: "Balance", Category: "Amounts", Expr: `row.amountDue - row.amountPaid`},
				{Key: "status", Label: "Status", Category: "Invoice"},
				{Key: "method", Label: "Payment Method", Category: "Invoice"},
				{Key: "paidAt", Label: "Paid At", Category: "Invoice"},
			},
			Filters: []FilterDefinition{
				{Key: "status", Label: "Status", Kind: FilterSelect, Field: "status", Options: []Option{
					{Value: "all", Label: "All Statuses"},
					{Value: "draft", Label: "Draft"},
					{Value: "sent", Label: "Sent"},
					{Value: "paid", Label: "Paid"},
					{Value: "overdue", Label: "Overdue"},
				}},
				{Key: "method", Label: "Payment Method", Kind: FilterMultiSelect, Field: "method"},
				{Key: "payerName", Label: "Payer", Kind: FilterText, Field: "payer.name", MatchMode: MatchContains},
				{Key: "invoiceNumber", Label: "Invoice Number", Kind: FilterText, Field: "invoiceNumber", MatchMode: MatchExact},
				{Key: "paidBetween", Label: "Paid Between", Kind: FilterDateRange, Field: "paidAt"},
			},
			Groupings: []Grouping{
				{Key: GroupNone, Label: "No Grouping"},
				{Key: "status", Label: "By Status", Field: "status"},
				{Key: "method", Label: "By Payment Method", Field: "method"},
				{Key: "diocese", Label: "By Payer Diocese", Field: "payer.diocese"},
			},
		},
	}
}
