package view

// Feature is a card with an icon, used for the home page highlights and the about page values.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// TeamMember is shown on the about page.
type TeamMember struct {
	Name string
	Role string
	Bio  string
}

// HomeFeatures 返回首页「Why Choose PrintPro」区块的卖点列表。
func HomeFeatures() []Feature {
	return []Feature{
		{Icon: "zap", Title: "Fast Turnaround", Description: "Get your prints delivered quickly without compromising quality"},
		{Icon: "award", Title: "Premium Quality", Description: "State-of-the-art printing technology for stunning results"},
		{Icon: "users", Title: "Expert Team", Description: "Professional designers and printing specialists at your service"},
		{Icon: "check-circle", Title: "Satisfaction Guaranteed", Description: "We stand behind our work with a 100% satisfaction guarantee"},
	}
}

// AboutValues 返回关于页的核心价值。
func AboutValues() []Feature {
	return []Feature{
		{Icon: "target", Title: "Quality First", Description: "We never compromise on quality, ensuring every print meets the highest standards."},
		{Icon: "eye", Title: "Attention to Detail", Description: "Every project receives meticulous attention from our expert team."},
		{Icon: "heart", Title: "Customer Satisfaction", Description: "Your satisfaction is our top priority. We go above and beyond for every client."},
		{Icon: "users", Title: "Collaborative Approach", Description: "We work closely with you to bring your vision to life."},
	}
}

// Team 返回关于页展示的团队成员。
func Team() []TeamMember {
	return []TeamMember{
		{Name: "John Doe", Role: "Founder & CEO", Bio: "20+ years in the printing industry"},
		{Name: "Jane Smith", Role: "Creative Director", Bio: "Award-winning designer with 15 years experience"},
		{Name: "Mike Johnson", Role: "Production Manager", Bio: "Expert in large-format and specialty printing"},
		{Name: "Sarah Williams", Role: "Customer Relations", Bio: "Dedicated to ensuring customer satisfaction"},
	}
}
