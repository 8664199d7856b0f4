package tests

import (
	"net/http"
	"testing"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

func Test_notificationApi(t *testing.T) {
	e := setup(t)
	teacher := testutil.CreateUser(t, e.repos.Users, "Tom", "tom@academy.test", core.RoleTeacher)
	sam := testutil.CreateUser(t, e.repos.Users, "Sam", "sam@academy.test", core.RoleStudent)
	kim := testutil.CreateUser(t, e.repos.Users, "Kim", "kim@academy.test", core.RoleStudent)
	samToken := getToken(t, e.conf, sam)
	kimToken := getToken(t, e.conf, kim)

	body := marshalObj(t, notification.NewNotification{RecipientIDs: []int{kim.ID, sam.ID, sam.ID}, Title: "Exam", Message: "Friday at 9"})
	toSam := notification.Notification{ID: 1, RecipientID: sam.ID, Title: "Exam", Message: "Friday at 9", CreatedAt: testutil.Now}
	toKim := notification.Notification{ID: 2, RecipientID: kim.ID, Title: "Exam", Message: "Friday at 9", CreatedAt: testutil.Now}
	read := toSam
	read.IsRead = true

	tests := []httpTest{
		{
			name: "students may not send", method: http.MethodPost, path: "/v1/notifications", body: body, token: samToken,
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "recipients required", method: http.MethodPost, path: "/v1/notifications", token: getToken(t, e.conf, teacher),
			body:     []byte(`{"title": "Exam", "message": "Friday at 9"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"recipient_ids": "recipient_ids must contain at least 1 item"}),
		},
		{
			name: "send", method: http.MethodPost, path: "/v1/notifications", body: body, token: getToken(t, e.conf, teacher),
			wantCode: http.StatusCreated, wantData: marshalObj(t, []notification.Notification{toSam, toKim}),
		},
		{name: "own notifications", path: "/v1/notifications", token: samToken, wantCode: http.StatusOK, wantData: marshalObj(t, []notification.Notification{toSam})},
		{
			name: "read someone else's", method: http.MethodPut, path: "/v1/notifications/1/read", body: []byte(`{"is_read": true}`), token: kimToken,
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "is_read required", method: http.MethodPut, path: "/v1/notifications/1/read", body: []byte(`{}`), token: samToken,
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"is_read": "this field is required"}),
		},
		{
			name: "mark read", method: http.MethodPut, path: "/v1/notifications/1/read", body: []byte(`{"is_read": true}`), token: samToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, read),
		},
		{
			name: "delete someone else's", method: http.MethodDelete, path: "/v1/notifications/1", token: kimToken,
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "delete", method: http.MethodDelete, path: "/v1/notifications/1", token: samToken, wantCode: http.StatusNoContent},
		{
			name: "delete twice", method: http.MethodDelete, path: "/v1/notifications/1", token: samToken,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "notification not found"}),
		},
		{name: "nothing left", path: "/v1/notifications", token: samToken, wantCode: http.StatusOK, wantData: []byte(`[]`)},
	}
	e.run(t, tests)
}
