package access

type Capability string

const (
	CapCreateListing  Capability = "create_listing"
	CapReview         Capability = "review"
	CapUploadPhotos   Capability = "upload_photos"
	CapSubCategories  Capability = "sub_categories"
	CapVideo          Capability = "video"
	CapFeatured       Capability = "featured"
	CapModerate       Capability = "moderate"
	CapManageAdmins   Capability = "manage_admins"
	CapManagePayments Capability = "manage_payments"
)
