// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package fragments holds building blocks shared by every view.
*/
package fragments

import (
	"context"

	"codeberg.org/wallfe/wallfe/server/request_context"
	"codeberg.org/wallfe/wallfe/server/template/commondata"
)

// CommonData returns the page data attached to ctx by the request context middleware.
func CommonData(ctx context.Context) commondata.PageCommonData {
	return request_context.FromContext(ctx).CommonData
}
