package kv

// Store key layout. Every entity is an independent JSON string value.
const (
	// userPrefix + id -> JSON domain.User
	userPrefix = "user:"
	// userEmailPrefix + email -> user id
	userEmailPrefix = "user:email:"
	// userAuthPrefix + id -> bcrypt hash of the user's password
	userAuthPrefix = "user:auth:"

	// designPrefix + id -> JSON domain.Design
	designPrefix = "design:"
	// designIDsKey (List): every live design id, in creation order
	designIDsKey = "design-ids"

	// postPrefix + id -> JSON domain.Post
	postPrefix = "post:"
	// postIDsKey (List): every live post id, in creation order
	postIDsKey = "post-ids"

	// linkPrefix + id -> JSON domain.Link
	linkPrefix = "link:"
	// inspirationLinksKey (Set): every live link id
	inspirationLinksKey = "inspiration-links"

	// bioKey -> JSON domain.Bio
	bioKey = "bio"

	// likePrefix + designId + ":" + userId -> epoch ms of the like
	likePrefix = "like:"

	// adminCredentialsKey -> JSON domain.AdminCredentials
	adminCredentialsKey = "admin:credentials"
)

func userKey(id string) string { return userPrefix + id }
func userEmailKey(e string) string { return userEmailPrefix + e }
func userAuthKey(id string) string { return userAuthPrefix + id }
func designKey(id string) string { return designPrefix + id }
func postKey(id string) string { return postPrefix + id }
func linkKey(id string) string { return linkPrefix + id }
func likeKey(designID, userID string) string {
	return likePrefix + designID + ":" + userID
}
