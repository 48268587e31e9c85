// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"codeberg.org/wallfe/wallfe/assets/views"
	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/core/untrusted"
	"codeberg.org/wallfe/wallfe/server/utils"
)

// HomePage lists wallpapers, filtered by name or tag when requested.
//
// The tag list and the listing are fetched concurrently.
func HomePage(w http.ResponseWriter, r *http.Request) error {
	var (
		api     = backend()
		page    = currentPage(r, pageFormat)
		size    = untrusted.GetPageSize(r)
		name    = utils.GetQueryParam(r, "name")
		tagID   = utils.GetPositiveInt(utils.GetQueryParam(r, "tag"), 0)
		tags    []core.Tag
		listing core.Page[core.Wallpaper]
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		resp, err := api.Tags(ctx)
		if err != nil {
			return err
		}

		tags, err = core.ParseTags(resp.Body)

		return err
	})

	g.Go(func() error {
		var (
			resp *requests.Response
			err  error
		)

		switch {
		case tagID > 0:
			resp, err = api.ImagesPageByTag(ctx, page, size, tagID)
		case name != "":
			resp, err = api.ImagesPageByName(ctx, page, size, name)
		default:
			resp, err = api.ImagesPage(ctx, page, size)
		}

		if err != nil {
			return err
		}

		listing, err = core.ParseWallpaperPage(resp.Body)

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return views.Home(views.HomeData{
		Title:      "Home",
		Tags:       tags,
		TagID:      tagID,
		Name:       name,
		Wallpapers: listing,
		Page:       page,
	}).Render(r.Context(), w)
}

func UploadPage(w http.ResponseWriter, r *http.Request) error {
	resp, err := backend().Tags(r.Context())
	if err != nil {
		return err
	}

	tags, err := core.ParseTags(resp.Body)
	if err != nil {
		return err
	}

	return views.Upload(views.UploadData{Title: "Upload", Tags: tags}).Render(r.Context(), w)
}

func LoginPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	pageData := views.LoginData{
		Title:            "Sign in",
		LoginReturnPath:  utils.SanitizeReturnPath(utils.GetQueryParam(r, "loginReturnPath")),
		NoAuthReturnPath: utils.SanitizeReturnPath(utils.GetQueryParam(r, "noAuthReturnPath")),
	}

	return views.Login(pageData).Render(r.Context(), w)
}

func RegisterPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	return views.Register(views.RegisterData{Title: "Register"}).Render(r.Context(), w)
}

// ProfilePage shows the session user and the wallpapers they uploaded.
func ProfilePage(w http.ResponseWriter, r *http.Request) error {
	var (
		api     = backend()
		page    = currentPage(r, pageFormat)
		size    = untrusted.GetPageSize(r)
		user    core.UserInfo
		listing core.Page[core.Wallpaper]
	)

	w.Header().Set("Cache-Control", "private, no-store")

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		resp, err := api.UserInfo(ctx)
		if err != nil {
			return err
		}

		user, err = core.ParseUserInfo(resp.Body)

		return err
	})

	g.Go(func() error {
		resp, err := api.UserWallpapers(ctx, page, size)
		if err != nil {
			return err
		}

		listing, err = core.ParseWallpaperPage(resp.Body)

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return views.Profile(views.ProfileData{
		Title:      "Profile",
		User:       user,
		Wallpapers: listing,
		Page:       page,
	}).Render(r.Context(), w)
}

// AdminPage shows the file review queue and the user list.
func AdminPage(w http.ResponseWriter, r *http.Request) error {
	var (
		api      = backend()
		filePage = currentPage(r, "filePage")
		userPage = currentPage(r, "userPage")
		size     = untrusted.GetPageSize(r)
		files    core.Page[core.Wallpaper]
		users    core.Page[core.AdminUser]
	)

	w.Header().Set("Cache-Control", "private, no-store")

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		resp, err := api.AdminPage(ctx, filePage, size)
		if err != nil {
			return err
		}

		files, err = core.ParseWallpaperPage(resp.Body)

		return err
	})

	g.Go(func() error {
		resp, err := api.AdminUsers(ctx, userPage, size)
		if err != nil {
			return err
		}

		users, err = core.ParseAdminUserPage(resp.Body)

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return views.Admin(views.AdminData{
		Title:    "Admin",
		Files:    files,
		FilePage: filePage,
		Users:    users,
		UserPage: userPage,
	}).Render(r.Context(), w)
}
