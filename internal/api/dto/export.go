package dto

type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

type ExportLocationRequest struct {
	ID   string   `json:"id" validate:"omitempty,uuid"`
	Lat  *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng  *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Name string   `json:"name" validate:"max=200"`
}

type ExportMeetingPointsRequest struct {
	Distance   *PointRequest `json:"distance"`
	TravelTime *PointRequest `json:"travelTime"`
}

type ExportRequest struct {
	Locations     []ExportLocationRequest    `json:"locations" validate:"max=100,dive"`
	MeetingPoints ExportMeetingPointsRequest `json:"meetingPoints"`
}
