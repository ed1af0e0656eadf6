package model

// Countries lists the selectable country codes.
var Countries = []Option{
	{Value: "us", Label: "United States"},
	{Value: "uk", Label: "United Kingdom"},
	{Value: "ca", Label: "Canada"},
	{Value: "au", Label: "Australia"},
	{Value: "de", Label: "Germany"},
}

// Registration returns the form description for the registration flow.
func Registration() FormModel {
	return FormModel{
		ID:          "registration",
		Title:       "Registration Form",
		Description: "Please fill in your information to get started",
		SubmitLabel: "Submit",
		Fields: []Field{
			{
				Name:        FieldFullName,
				Type:        FieldTypeText,
				Required:    true,
				Label:       "Full Name",
				Description: "Enter at least 3 characters",
			},
			{
				Name:        FieldEmail,
				Type:        FieldTypeText,
				Format:      "email",
				Required:    true,
				Label:       "Email Address",
				Description: "Enter a valid email address",
			},
			{
				Name:        FieldPassword,
				Type:        FieldTypeText,
				Format:      "password",
				Required:    true,
				Label:       "Password",
				Description: "Minimum 8 characters, 1 number, 1 special character",
			},
			{
				Name:        FieldPhoneNumber,
				Type:        FieldTypeText,
				Format:      "tel",
				Required:    true,
				Label:       "Phone Number",
				Description: "Enter 10 digits",
			},
			{
				Name:        FieldAge,
				Type:        FieldTypeInteger,
				Required:    true,
				Label:       "Age",
				Description: "Must be between 18 and 65",
				Metadata:    map[string]string{"min": "18", "max": "65"},
			},
			{
				Name:        FieldCountry,
				Type:        FieldTypeChoice,
				Required:    true,
				Label:       "Country",
				Placeholder: "Select Country",
				Description: "Select your country",
				Options:     append([]Option(nil), Countries...),
			},
			{
				Name:        FieldAgreeToTerms,
				Type:        FieldTypeBoolean,
				Required:    true,
				Label:       "I agree to the terms and conditions",
				Description: "You must agree to continue",
			},
		},
	}
}
