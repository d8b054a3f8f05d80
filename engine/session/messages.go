package session

// Console text shown to the operator.
const (
	msgWelcome       = "Welcome to the Car Parking System!"
	msgFarewell      = "Thank you for using the system!"
	msgChoicePrompt  = "Enter your choice: "
	msgInvalidChoice = "Invalid choice. Try again."
	msgLoggedOut     = "Logged out."

	msgUserIDPrompt    = "Enter User ID: "
	msgNamePrompt      = "Enter Name: "
	msgEmailPrompt     = "Enter Email: "
	msgPasswordPrompt  = "Enter Password: "
	msgRolePrompt      = "Enter Role (Admin/User): "
	msgDuplicateUser   = "User ID already exists. Try a different one."
	msgInvalidRole     = "Invalid role. Registration failed."
	msgRegistered      = "Registration successful!"
	msgBadCredentials  = "Invalid credentials. Try again."
	msgAdminLoggedIn   = "Admin Login Successful!"
	msgUserLoggedIn    = "User Login Successful!"
	msgSlotIDPrompt    = "Enter Slot ID: "
	msgInvalidSlotID   = "Invalid slot ID."
	msgDuplicateSlot   = "Slot ID already exists."
	msgSlotAdded       = "Parking slot added successfully!"
	msgNoSlots         = "No parking slots available."
	msgCannotRemove    = "Slot is either invalid or already empty."
	msgCarRemoved      = "Car removed from slot %d"
	msgCarNumberPrompt = "Enter Car Number: "
	msgEmptyCarNumber  = "Car number cannot be empty."
	msgNoFreeSlot      = "No available parking slots."
	msgCarParked       = "Car parked successfully in slot %d"

	msgSaveUsersFailed = "Error saving users: %v"
	msgSaveSlotsFailed = "Error saving parking slots: %v"

	slotTableHeader = "Slot ID | Status      | Car Number"
	slotTableRule   = "---------------------------------"
	slotTableRow    = "%-7d | %-11s | %s"
)
