// Package schema loads declarative step-form definitions from JSON or YAML
// documents. Each document declares one or more forms keyed by id:
//
//	forms:
//	  campaign-booking:
//	    title: Book a Campaign
//	    submitLabel: Request Booking
//	    steps:
//	      - id: schedule
//	        title: Schedule
//	        fields:
//	          - name: startDate
//	            label: Start Date
//	            required: true
//	            validators: ["pattern:^\d{4}-\d{2}-\d{2}$"]
//
// Validator names resolve through a validators.Registry; unknown names fail
// the load.
package schema
