// Package http exposes the content API as JSON over HTTP.
//
// Routes:
//
//	POST   /admin/verify      public   {password} -> {valid}
//	GET    /content           public
//	PUT    /content           admin
//	GET    /tattoos           public   ?category=&featured=
//	POST   /tattoos           admin
//	PUT    /tattoos           admin
//	DELETE /tattoos           admin
//	GET    /testimonials      public
//	POST   /testimonials      admin
//	DELETE /testimonials      admin
//	POST   /upload            admin    multipart field "file"
//	DELETE /upload            admin    {url} releases an unattached image
//
// Admin routes read the shared secret from the x-admin-password header and
// fail with 401 {"error":"Unauthorized"} when it is missing or wrong. All
// failures carry a {"error":"<message>"} body; unanticipated errors from
// persistence or storage surface as 500.
package http
