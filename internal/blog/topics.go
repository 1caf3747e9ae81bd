package blog

// Topics is the rotation of subjects the daily post is drawn from.
var Topics = []string{
	"What to Do Immediately After a Car Accident in Fontana",
	"Understanding California Car Insurance Laws",
	"Common Causes of Car Accidents in San Bernardino County",
	"How to File a Personal Injury Claim in California",
	"When to Hire a Car Accident Lawyer in Fontana",
	"Dealing with Insurance Companies After an Accident",
	"California Comparative Negligence Laws Explained",
	"Motorcycle Accident Safety on Fontana Streets",
	"Truck Accident Liability in Southern California",
	"Pedestrian Rights and Safety in Fontana",
	"Bicycle Accident Laws in California",
	"Uninsured Motorist Coverage in California",
	"Medical Treatment After a Car Accident",
	"Documenting Evidence After an Accident",
	"Understanding Pain and Suffering Damages",
	"Wrongful Death Claims in California",
	"Teen Driver Accidents and Liability",
	"DUI Accident Victims Rights",
	"Ride-share Accident Liability Issues",
	"Construction Zone Accident Prevention",
}

// TargetKeywords are the search phrases every post is optimised for.
var TargetKeywords = []string{
	"fontana car accident lawyer",
	"car accident attorney fontana",
	"personal injury lawyer san bernardino county",
}
